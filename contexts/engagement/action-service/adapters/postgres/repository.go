package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartspace/contexts/engagement/action-service/domain/entities"
	domainerrors "smartspace/contexts/engagement/action-service/domain/errors"
	"smartspace/contexts/engagement/action-service/ports"
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

func (r *Repository) Create(ctx context.Context, action entities.Action) (entities.Action, error) {
	if action.Key.IsZero() {
		return entities.Action{}, domainerrors.ErrInvalidKey
	}
	row, err := actionModelFromEntity(action)
	if err != nil {
		return entities.Action{}, err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.Action{}, domainerrors.ErrAlreadyExists
		}
		return entities.Action{}, err
	}
	return row.toEntity()
}

func (r *Repository) GetByKey(ctx context.Context, key entities.ActionKey) (entities.Action, bool, error) {
	var row actionModel
	err := r.db.WithContext(ctx).
		Where("smartspace = ? AND id = ?", key.Smartspace, key.ID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Action{}, false, nil
		}
		return entities.Action{}, false, err
	}
	action, err := row.toEntity()
	if err != nil {
		return entities.Action{}, false, err
	}
	return action, true, nil
}

func (r *Repository) ReadAll(ctx context.Context) ([]entities.Action, error) {
	var rows []actionModel
	if err := r.db.WithContext(ctx).
		Order("smartspace ASC, id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return actionsFromRows(rows)
}

func (r *Repository) Paginate(ctx context.Context, sortBy string, size int, page int) ([]entities.Action, error) {
	var rows []actionModel
	if err := r.db.WithContext(ctx).
		Order(actionOrderClause(sortBy)).
		Limit(size).
		Offset(page * size).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return actionsFromRows(rows)
}

func (r *Repository) Delete(ctx context.Context, key entities.ActionKey) error {
	result := r.db.WithContext(ctx).
		Where("smartspace = ? AND id = ?", key.Smartspace, key.ID).
		Delete(&actionModel{})
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
		Delete(&actionModel{}).
		Error
}

func (r *Repository) Import(ctx context.Context, action entities.Action) (entities.Action, error) {
	if action.Key.IsZero() {
		return entities.Action{}, domainerrors.ErrInvalidKey
	}
	row, err := actionModelFromEntity(action)
	if err != nil {
		return entities.Action{}, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "smartspace"}, {Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error; err != nil {
		return entities.Action{}, err
	}
	return row.toEntity()
}

// ImportAll upserts the whole batch and stages one outbox row per
// action inside a single transaction, so the events exist exactly when
// the actions do.
func (r *Repository) ImportAll(ctx context.Context, actions []entities.Action) ([]entities.Action, error) {
	imported := make([]entities.Action, 0, len(actions))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, action := range actions {
			if action.Key.IsZero() {
				return domainerrors.ErrInvalidKey
			}
			row, err := actionModelFromEntity(action)
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
			stored, err := row.toEntity()
			if err != nil {
				return err
			}
			imported = append(imported, stored)

			outboxRow, err := outboxModelForAction(stored, now)
			if err != nil {
				return err
			}
			if err := tx.Create(&outboxRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imported, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", "pending").
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, row.toMessage())
	}
	return messages, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       "published",
			"published_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

type actionModel struct {
	Smartspace        string    `gorm:"column:smartspace;primaryKey"`
	ID                string    `gorm:"column:id;primaryKey"`
	ActionType        string    `gorm:"column:action_type"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	ElementSmartspace string    `gorm:"column:element_smartspace"`
	ElementID         string    `gorm:"column:element_id"`
	PlayerSmartspace  string    `gorm:"column:player_smartspace"`
	PlayerEmail       string    `gorm:"column:player_email"`
	Attributes        []byte    `gorm:"column:attributes;type:jsonb"`
}

func (actionModel) TableName() string {
	return "actions"
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload;type:jsonb"`
	Status      string     `gorm:"column:status"`
	RetryCount  int        `gorm:"column:retry_count"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "action_outbox"
}

func (m outboxModel) toMessage() ports.OutboxMessage {
	return ports.OutboxMessage{
		OutboxID:    m.OutboxID,
		EventType:   m.EventType,
		Payload:     m.Payload,
		Status:      m.Status,
		RetryCount:  m.RetryCount,
		CreatedAt:   m.CreatedAt,
		PublishedAt: m.PublishedAt,
	}
}

func outboxModelForAction(action entities.Action, createdAt time.Time) (outboxModel, error) {
	data, err := json.Marshal(map[string]any{
		"action_key":         action.Key.String(),
		"action_type":        action.Type,
		"element_smartspace": action.Element.Smartspace,
		"element_id":         action.Element.ID,
		"player_smartspace":  action.Player.Smartspace,
		"player_email":       action.Player.Email,
	})
	if err != nil {
		return outboxModel{}, err
	}
	envelope := ports.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     "smartspace.action.committed",
		OccurredAt:    createdAt,
		SourceService: "action-service",
		SchemaVersion: 1,
		PartitionKey:  action.Player.Smartspace + "#" + action.Player.Email,
		Data:          data,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return outboxModel{}, err
	}
	return outboxModel{
		OutboxID:  uuid.NewString(),
		EventType: envelope.EventType,
		Payload:   payload,
		Status:    "pending",
		CreatedAt: createdAt,
	}, nil
}

func actionModelFromEntity(item entities.Action) (actionModel, error) {
	attributes, err := marshalAttributes(item.Attributes)
	if err != nil {
		return actionModel{}, err
	}
	return actionModel{
		Smartspace:        item.Key.Smartspace,
		ID:                item.Key.ID,
		ActionType:        item.Type,
		CreatedAt:         item.Created,
		ElementSmartspace: item.Element.Smartspace,
		ElementID:         item.Element.ID,
		PlayerSmartspace:  item.Player.Smartspace,
		PlayerEmail:       item.Player.Email,
		Attributes:        attributes,
	}, nil
}

func (m actionModel) toEntity() (entities.Action, error) {
	attributes, err := unmarshalAttributes(m.Attributes)
	if err != nil {
		return entities.Action{}, err
	}
	return entities.Action{
		Key:        entities.ActionKey{Smartspace: m.Smartspace, ID: m.ID},
		Type:       m.ActionType,
		Created:    m.CreatedAt,
		Element:    entities.ElementRef{Smartspace: m.ElementSmartspace, ID: m.ElementID},
		Player:     entities.PlayerRef{Smartspace: m.PlayerSmartspace, Email: m.PlayerEmail},
		Attributes: attributes,
	}, nil
}

func actionsFromRows(rows []actionModel) ([]entities.Action, error) {
	items := make([]entities.Action, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func actionOrderClause(sortBy string) string {
	switch sortBy {
	case "type":
		return "action_type ASC, smartspace ASC, id ASC"
	case "created":
		return "created_at ASC, smartspace ASC, id ASC"
	default:
		return "smartspace ASC, id ASC"
	}
}

func marshalAttributes(attributes map[string]any) ([]byte, error) {
	if attributes == nil {
		return nil, nil
	}
	return json.Marshal(attributes)
}

func unmarshalAttributes(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var attributes map[string]any
	if err := json.Unmarshal(raw, &attributes); err != nil {
		return nil, err
	}
	return attributes, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
