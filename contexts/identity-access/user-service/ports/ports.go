package ports

import (
	"context"
	"time"

	"smartspace/contexts/identity-access/user-service/domain/entities"
)

// Repository is the user entity store. Implementations must serialize
// mutations per key, not behind one global lock.
type Repository interface {
	Create(ctx context.Context, user entities.User) (entities.User, error)
	GetByKey(ctx context.Context, key entities.UserKey) (entities.User, bool, error)
	ReadAll(ctx context.Context) ([]entities.User, error)
	Paginate(ctx context.Context, sortBy string, size int, page int) ([]entities.User, error)
	Update(ctx context.Context, key entities.UserKey, patch entities.UserPatch) (entities.User, error)
	Delete(ctx context.Context, key entities.UserKey) error
	DeleteAll(ctx context.Context) error

	// Import upserts unconditionally; trusted bulk paths only.
	Import(ctx context.Context, user entities.User) (entities.User, error)
	// ImportAll applies the whole batch atomically: either every entry
	// becomes visible or none do.
	ImportAll(ctx context.Context, users []entities.User) ([]entities.User, error)

	// AddPoints is the narrow accrual path used by the action-commit
	// flow. It bypasses the merge semantics of Update.
	AddPoints(ctx context.Context, key entities.UserKey, delta int64) (entities.User, error)
}

type Clock interface {
	Now() time.Time
}
