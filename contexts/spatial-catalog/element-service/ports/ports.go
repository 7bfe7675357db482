package ports

import (
	"context"
	"time"

	"smartspace/contexts/spatial-catalog/element-service/domain/entities"
)

const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RolePlayer  = "PLAYER"
)

// ActorRecord is the projection of a smartspace user this module needs
// to authorize a call. It is resolved through the directory port, never
// by importing the identity-access context.
type ActorRecord struct {
	Smartspace string
	Email      string
	Role       string
}

type UserDirectory interface {
	GetActor(ctx context.Context, smartspace string, email string) (ActorRecord, bool, error)
}

// Repository is the element entity store.
type Repository interface {
	Create(ctx context.Context, element entities.Element) (entities.Element, error)
	GetByKey(ctx context.Context, key entities.ElementKey) (entities.Element, bool, error)
	ReadAll(ctx context.Context) ([]entities.Element, error)
	Paginate(ctx context.Context, sortBy string, size int, page int) ([]entities.Element, error)

	// PaginateByField narrows to rows whose field (name or type) equals
	// value, with plain pagination semantics on top.
	PaginateByField(ctx context.Context, field string, value string, size int, page int) ([]entities.Element, error)
	// PaginateByDistance returns elements within distance of the given
	// point, Euclidean over the lat/lng plane.
	PaginateByDistance(ctx context.Context, lat float64, lng float64, distance float64, size int, page int) ([]entities.Element, error)

	Update(ctx context.Context, key entities.ElementKey, patch entities.ElementPatch) (entities.Element, error)
	Delete(ctx context.Context, key entities.ElementKey) error
	DeleteAll(ctx context.Context) error

	Import(ctx context.Context, element entities.Element) (entities.Element, error)
	ImportAll(ctx context.Context, elements []entities.Element) ([]entities.Element, error)
}

type Clock interface {
	Now() time.Time
}
