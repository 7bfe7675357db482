package ports

import (
	"context"
	"time"

	"smartspace/contexts/engagement/action-service/domain/entities"
)

const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RolePlayer  = "PLAYER"
)

// ActorRecord is the identity projection this module needs to
// authorize callers and to resolve player references.
type ActorRecord struct {
	Smartspace string
	Email      string
	Role       string
}

type UserDirectory interface {
	GetActor(ctx context.Context, smartspace string, email string) (ActorRecord, bool, error)
}

type ElementDirectory interface {
	ElementExists(ctx context.Context, smartspace string, id string) (bool, error)
}

// PlayerScores is the narrow point-accrual path on the referenced
// user, bypassing general profile merge updates.
type PlayerScores interface {
	AddPoints(ctx context.Context, smartspace string, email string, delta int64) error
}

// Repository is the action entity store. ImportAll must commit the
// batch and its outbox rows atomically.
type Repository interface {
	Create(ctx context.Context, action entities.Action) (entities.Action, error)
	GetByKey(ctx context.Context, key entities.ActionKey) (entities.Action, bool, error)
	ReadAll(ctx context.Context) ([]entities.Action, error)
	Paginate(ctx context.Context, sortBy string, size int, page int) ([]entities.Action, error)
	Delete(ctx context.Context, key entities.ActionKey) error
	DeleteAll(ctx context.Context) error

	Import(ctx context.Context, action entities.Action) (entities.Action, error)
	ImportAll(ctx context.Context, actions []entities.Action) ([]entities.Action, error)
}

type Clock interface {
	Now() time.Time
}
