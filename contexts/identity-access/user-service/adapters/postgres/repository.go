package postgresadapter

import (
	"context"
	"errors"
	"log/slog"

	"smartspace/contexts/identity-access/user-service/domain/entities"
	domainerrors "smartspace/contexts/identity-access/user-service/domain/errors"

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

func (r *Repository) Create(ctx context.Context, user entities.User) (entities.User, error) {
	if user.Key.IsZero() {
		return entities.User{}, domainerrors.ErrInvalidKey
	}
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, domainerrors.ErrAlreadyExists
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetByKey(ctx context.Context, key entities.UserKey) (entities.User, bool, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("smartspace = ? AND email = ?", key.Smartspace, key.Email).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ReadAll(ctx context.Context) ([]entities.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).
		Order("smartspace ASC, email ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return usersFromRows(rows), nil
}

func (r *Repository) Paginate(ctx context.Context, sortBy string, size int, page int) ([]entities.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).
		Order(userOrderClause(sortBy)).
		Limit(size).
		Offset(page * size).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return usersFromRows(rows), nil
}

// Update merges non-nil patch fields onto the stored row. The row is
// locked for the duration of the transaction so concurrent updates to
// the same key serialize without blocking other keys.
func (r *Repository) Update(ctx context.Context, key entities.UserKey, patch entities.UserPatch) (entities.User, error) {
	var updated entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row userModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("smartspace = ? AND email = ?", key.Smartspace, key.Email).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		if patch.Username != nil {
			row.Username = *patch.Username
		}
		if patch.Avatar != nil {
			row.Avatar = *patch.Avatar
		}
		if patch.Role != nil {
			row.Role = string(*patch.Role)
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		updated = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.User{}, err
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, key entities.UserKey) error {
	result := r.db.WithContext(ctx).
		Where("smartspace = ? AND email = ?", key.Smartspace, key.Email).
		Delete(&userModel{})
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
		Delete(&userModel{}).
		Error
}

func (r *Repository) Import(ctx context.Context, user entities.User) (entities.User, error) {
	if user.Key.IsZero() {
		return entities.User{}, domainerrors.ErrInvalidKey
	}
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "smartspace"}, {Name: "email"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error; err != nil {
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

// ImportAll upserts the whole batch inside one transaction; any
// failure rolls back every prior write of the call.
func (r *Repository) ImportAll(ctx context.Context, users []entities.User) ([]entities.User, error) {
	imported := make([]entities.User, 0, len(users))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, user := range users {
			if user.Key.IsZero() {
				return domainerrors.ErrInvalidKey
			}
			row := userModelFromEntity(user)
			if err := tx.
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "smartspace"}, {Name: "email"}},
					UpdateAll: true,
				}).
				Create(&row).
				Error; err != nil {
				return err
			}
			imported = append(imported, row.toEntity())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imported, nil
}

func (r *Repository) AddPoints(ctx context.Context, key entities.UserKey, delta int64) (entities.User, error) {
	var updated entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&userModel{}).
			Where("smartspace = ? AND email = ?", key.Smartspace, key.Email).
			Update("points", gorm.Expr("points + ?", delta))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNotFound
		}
		var row userModel
		if err := tx.
			Where("smartspace = ? AND email = ?", key.Smartspace, key.Email).
			First(&row).
			Error; err != nil {
			return err
		}
		updated = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.User{}, err
	}
	return updated, nil
}

type userModel struct {
	Smartspace string `gorm:"column:smartspace;primaryKey"`
	Email      string `gorm:"column:email;primaryKey"`
	Username   string `gorm:"column:username"`
	Avatar     string `gorm:"column:avatar"`
	Role       string `gorm:"column:role"`
	Points     int64  `gorm:"column:points"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(item entities.User) userModel {
	return userModel{
		Smartspace: item.Key.Smartspace,
		Email:      item.Key.Email,
		Username:   item.Username,
		Avatar:     item.Avatar,
		Role:       string(item.Role),
		Points:     item.Points,
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		Key:        entities.UserKey{Smartspace: m.Smartspace, Email: m.Email},
		Smartspace: m.Smartspace,
		Email:      m.Email,
		Username:   m.Username,
		Avatar:     m.Avatar,
		Role:       entities.Role(m.Role),
		Points:     m.Points,
	}
}

func usersFromRows(rows []userModel) []entities.User {
	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func userOrderClause(sortBy string) string {
	switch sortBy {
	case "username":
		return "username ASC, smartspace ASC, email ASC"
	case "role":
		return "role ASC, smartspace ASC, email ASC"
	case "points":
		return "points ASC, smartspace ASC, email ASC"
	default:
		return "smartspace ASC, email ASC"
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
