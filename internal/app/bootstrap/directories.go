package bootstrap

import (
	"context"

	actionports "smartspace/contexts/engagement/action-service/ports"
	userpostgres "smartspace/contexts/identity-access/user-service/adapters/postgres"
	userentities "smartspace/contexts/identity-access/user-service/domain/entities"
	elementpostgres "smartspace/contexts/spatial-catalog/element-service/adapters/postgres"
	elemententities "smartspace/contexts/spatial-catalog/element-service/domain/entities"
	elementports "smartspace/contexts/spatial-catalog/element-service/ports"
)

// The catalog and engagement contexts see identity and catalog data
// only through their own port projections. These adapters close the
// loop here at the composition root, so the context packages stay
// free of cross-context imports.

type userDirectory struct {
	users *userpostgres.Repository
}

func (d userDirectory) getActor(ctx context.Context, smartspace string, email string) (userentities.User, bool, error) {
	key, err := userentities.NewUserKey(smartspace, email)
	if err != nil {
		return userentities.User{}, false, nil
	}
	return d.users.GetByKey(ctx, key)
}

type elementUserDirectory struct {
	userDirectory
}

func (d elementUserDirectory) GetActor(ctx context.Context, smartspace string, email string) (elementports.ActorRecord, bool, error) {
	user, found, err := d.getActor(ctx, smartspace, email)
	if err != nil || !found {
		return elementports.ActorRecord{}, false, err
	}
	return elementports.ActorRecord{
		Smartspace: user.Smartspace,
		Email:      user.Email,
		Role:       string(user.Role),
	}, true, nil
}

type actionUserDirectory struct {
	userDirectory
}

func (d actionUserDirectory) GetActor(ctx context.Context, smartspace string, email string) (actionports.ActorRecord, bool, error) {
	user, found, err := d.getActor(ctx, smartspace, email)
	if err != nil || !found {
		return actionports.ActorRecord{}, false, err
	}
	return actionports.ActorRecord{
		Smartspace: user.Smartspace,
		Email:      user.Email,
		Role:       string(user.Role),
	}, true, nil
}

type elementDirectory struct {
	elements *elementpostgres.Repository
}

func (d elementDirectory) ElementExists(ctx context.Context, smartspace string, id string) (bool, error) {
	key, err := elemententities.NewElementKey(smartspace, id)
	if err != nil {
		return false, nil
	}
	_, found, err := d.elements.GetByKey(ctx, key)
	return found, err
}

type playerScores struct {
	users *userpostgres.Repository
}

func (p playerScores) AddPoints(ctx context.Context, smartspace string, email string, delta int64) error {
	key, err := userentities.NewUserKey(smartspace, email)
	if err != nil {
		return err
	}
	_, err = p.users.AddPoints(ctx, key, delta)
	return err
}
