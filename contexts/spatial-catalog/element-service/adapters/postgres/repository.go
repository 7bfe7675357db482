package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"smartspace/contexts/spatial-catalog/element-service/domain/entities"
	domainerrors "smartspace/contexts/spatial-catalog/element-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) Create(ctx context.Context, element entities.Element) (entities.Element, error) {
	if element.Key.IsZero() {
		return entities.Element{}, domainerrors.ErrInvalidKey
	}
	row, err := elementModelFromEntity(element)
	if err != nil {
		return entities.Element{}, err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.Element{}, domainerrors.ErrAlreadyExists
		}
		return entities.Element{}, err
	}
	return row.toEntity()
}

func (r *Repository) GetByKey(ctx context.Context, key entities.ElementKey) (entities.Element, bool, error) {
	var row elementModel
	err := r.db.WithContext(ctx).
		Where("smartspace = ? AND id = ?", key.Smartspace, key.ID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Element{}, false, nil
		}
		return entities.Element{}, false, err
	}
	element, err := row.toEntity()
	if err != nil {
		return entities.Element{}, false, err
	}
	return element, true, nil
}

func (r *Repository) ReadAll(ctx context.Context) ([]entities.Element, error) {
	var rows []elementModel
	if err := r.db.WithContext(ctx).
		Order("smartspace ASC, id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return elementsFromRows(rows)
}

func (r *Repository) Paginate(ctx context.Context, sortBy string, size int, page int) ([]entities.Element, error) {
	var rows []elementModel
	if err := r.db.WithContext(ctx).
		Order(elementOrderClause(sortBy)).
		Limit(size).
		Offset(page * size).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return elementsFromRows(rows)
}

func (r *Repository) PaginateByField(ctx context.Context, field string, value string, size int, page int) ([]entities.Element, error) {
	tx := r.db.WithContext(ctx).Model(&elementModel{})
	switch field {
	case "name":
		tx = tx.Where("name = ?", value)
	case "type":
		tx = tx.Where("element_type = ?", value)
	default:
		return nil, domainerrors.ErrInvalidArgument
	}

	var rows []elementModel
	if err := tx.
		Order("smartspace ASC, id ASC").
		Limit(size).
		Offset(page * size).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return elementsFromRows(rows)
}

func (r *Repository) PaginateByDistance(ctx context.Context, lat float64, lng float64, distance float64, size int, page int) ([]entities.Element, error) {
	var rows []elementModel
	if err := r.db.WithContext(ctx).
		Where("((lat - ?) * (lat - ?) + (lng - ?) * (lng - ?)) <= ?",
			lat, lat, lng, lng, distance*distance).
		Order("smartspace ASC, id ASC").
		Limit(size).
		Offset(page * size).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return elementsFromRows(rows)
}

func (r *Repository) Update(ctx context.Context, key entities.ElementKey, patch entities.ElementPatch) (entities.Element, error) {
	var updated entities.Element
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row elementModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("smartspace = ? AND id = ?", key.Smartspace, key.ID).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		if patch.Name != nil {
			row.Name = *patch.Name
		}
		if patch.Type != nil {
			row.ElementType = *patch.Type
		}
		if patch.Location != nil {
			row.Lat = patch.Location.Lat
			row.Lng = patch.Location.Lng
		}
		if patch.Expired != nil {
			row.Expired = *patch.Expired
		}
		if patch.Attributes != nil {
			payload, err := json.Marshal(patch.Attributes)
			if err != nil {
				return err
			}
			row.Attributes = payload
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		updated, err = row.toEntity()
		return err
	})
	if err != nil {
		return entities.Element{}, err
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, key entities.ElementKey) error {
	result := r.db.WithContext(ctx).
		Where("smartspace = ? AND id = ?", key.Smartspace, key.ID).
		Delete(&elementModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&elementModel{}).
		Error
}

func (r *Repository) Import(ctx context.Context, element entities.Element) (entities.Element, error) {
	if element.Key.IsZero() {
		return entities.Element{}, domainerrors.ErrInvalidKey
	}
	row, err := elementModelFromEntity(element)
	if err != nil {
		return entities.Element{}, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "smartspace"}, {Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error; err != nil {
		return entities.Element{}, err
	}
	return row.toEntity()
}

func (r *Repository) ImportAll(ctx context.Context, elements []entities.Element) ([]entities.Element, error) {
	imported := make([]entities.Element, 0, len(elements))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, element := range elements {
			if element.Key.IsZero() {
				return domainerrors.ErrInvalidKey
			}
			row, err := elementModelFromEntity(element)
			if err != nil {
				return err
			}
			if err := tx.
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "smartspace"}, {Name: "id"}},
					UpdateAll: true,
				}).
				Create(&row).
				Error; err != nil {
				return err
			}
			item, err := row.toEntity()
			if err != nil {
				return err
			}
			imported = append(imported, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imported, nil
}

type elementModel struct {
	Smartspace        string    `gorm:"column:smartspace;primaryKey"`
	ID                string    `gorm:"column:id;primaryKey"`
	Name              string    `gorm:"column:name"`
	ElementType       string    `gorm:"column:element_type"`
	Lat               float64   `gorm:"column:lat"`
	Lng               float64   `gorm:"column:lng"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	Expired           bool      `gorm:"column:expired"`
	CreatorSmartspace string    `gorm:"column:creator_smartspace"`
	CreatorEmail      string    `gorm:"column:creator_email"`
	Attributes        []byte    `gorm:"column:attributes;type:jsonb"`
}

func (elementModel) TableName() string {
	return "elements"
}

func elementModelFromEntity(item entities.Element) (elementModel, error) {
	var attributes []byte
	if item.Attributes != nil {
		payload, err := json.Marshal(item.Attributes)
		if err != nil {
			return elementModel{}, err
		}
		attributes = payload
	}
	return elementModel{
		Smartspace:        item.Key.Smartspace,
		ID:                item.Key.ID,
		Name:              item.Name,
		ElementType:       item.Type,
		Lat:               item.Location.Lat,
		Lng:               item.Location.Lng,
		CreatedAt:         item.Created.UTC(),
		Expired:           item.Expired,
		CreatorSmartspace: item.CreatorSmartspace,
		CreatorEmail:      item.CreatorEmail,
		Attributes:        attributes,
	}, nil
}

func (m elementModel) toEntity() (entities.Element, error) {
	var attributes map[string]any
	if len(m.Attributes) > 0 {
		if err := json.Unmarshal(m.Attributes, &attributes); err != nil {
			return entities.Element{}, err
		}
	}
	return entities.Element{
		Key:               entities.ElementKey{Smartspace: m.Smartspace, ID: m.ID},
		Name:              m.Name,
		Type:              m.ElementType,
		Location:          entities.Location{Lat: m.Lat, Lng: m.Lng},
		Created:           m.CreatedAt.UTC(),
		Expired:           m.Expired,
		CreatorSmartspace: m.CreatorSmartspace,
		CreatorEmail:      m.CreatorEmail,
		Attributes:        attributes,
	}, nil
}

func elementsFromRows(rows []elementModel) ([]entities.Element, error) {
	items := make([]entities.Element, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func elementOrderClause(sortBy string) string {
	switch sortBy {
	case "name":
		return "name ASC, smartspace ASC, id ASC"
	case "type":
		return "element_type ASC, smartspace ASC, id ASC"
	case "created":
		return "created_at ASC, smartspace ASC, id ASC"
	default:
		return "smartspace ASC, id ASC"
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
