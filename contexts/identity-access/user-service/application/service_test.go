package application

import (
	"context"
	"errors"
	"testing"

	"smartspace/contexts/identity-access/user-service/adapters/memory"
	"smartspace/contexts/identity-access/user-service/domain/entities"
	domainerrors "smartspace/contexts/identity-access/user-service/domain/errors"
)

const homeSmartspace = "2019b.home"

func adminUser() entities.User {
	return entities.User{
		Key:        entities.UserKey{Smartspace: homeSmartspace, Email: "admin@home.io"},
		Smartspace: homeSmartspace,
		Email:      "admin@home.io",
		Username:   "admin",
		Avatar:     ":-)",
		Role:       entities.RoleAdmin,
	}
}

func foreignUser(email string) entities.User {
	return entities.User{
		Key:        entities.UserKey{Smartspace: "2019b.other", Email: email},
		Smartspace: "2019b.other",
		Email:      email,
		Username:   "someone",
		Avatar:     ":-P",
		Role:       entities.RolePlayer,
	}
}

func newService(seed ...entities.User) (Service, *memory.Store) {
	store := memory.NewStore(seed)
	return Service{Repo: store, HomeSmartspace: homeSmartspace}, store
}

func TestImportUsersRoundTrip(t *testing.T) {
	service, store := newService(adminUser())

	imported, err := service.ImportUsers(context.Background(), homeSmartspace, "admin@home.io",
		[]entities.User{foreignUser("a@other.io"), foreignUser("b@other.io")})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(imported) != 2 {
		t.Fatalf("expected 2 imported users, got %d", len(imported))
	}

	stored, found, err := store.GetByKey(context.Background(), imported[0].Key)
	if err != nil || !found {
		t.Fatalf("imported user not readable: found=%v err=%v", found, err)
	}
	if stored != imported[0] {
		t.Fatalf("stored user differs from imported: %+v vs %+v", stored, imported[0])
	}
}

func TestImportUsersRejectedForNonAdmin(t *testing.T) {
	player := foreignUser("player@other.io")
	service, store := newService(player)

	_, err := service.ImportUsers(context.Background(), player.Smartspace, player.Email,
		[]entities.User{foreignUser("x@other.io")})
	if !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}

	all, _ := store.ReadAll(context.Background())
	if len(all) != 1 {
		t.Fatalf("unauthorized call must not mutate the store, have %d users", len(all))
	}
}

func TestImportUsersAtomicOnInvalidCandidate(t *testing.T) {
	service, store := newService(adminUser())

	bad := foreignUser("bad@other.io")
	bad.Username = "" // invalid
	_, err := service.ImportUsers(context.Background(), homeSmartspace, "admin@home.io",
		[]entities.User{foreignUser("good@other.io"), bad})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	all, _ := store.ReadAll(context.Background())
	if len(all) != 1 {
		t.Fatalf("failed batch must persist nothing, have %d users", len(all))
	}
}

func TestImportRejectsHomeSmartspaceUser(t *testing.T) {
	service, _ := newService(adminUser())

	local := foreignUser("local@home.io")
	local.Smartspace = homeSmartspace
	local.Key.Smartspace = homeSmartspace
	_, err := service.ImportUsers(context.Background(), homeSmartspace, "admin@home.io",
		[]entities.User{local})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("home-smartspace users must be rejected, got %v", err)
	}
}

func TestReimportSameUserDoesNotDuplicate(t *testing.T) {
	service, store := newService(adminUser())
	candidate := foreignUser("dup@other.io")

	for i := 0; i < 2; i++ {
		if _, err := service.ImportUsers(context.Background(), homeSmartspace, "admin@home.io",
			[]entities.User{candidate}); err != nil {
			t.Fatalf("import %d failed: %v", i, err)
		}
	}

	all, _ := store.ReadAll(context.Background())
	if len(all) != 2 { // admin + one imported user
		t.Fatalf("re-import must upsert, not duplicate; have %d users", len(all))
	}
}

func TestListUsersUnknownSortField(t *testing.T) {
	service, _ := newService(adminUser())

	_, err := service.ListUsers(context.Background(), homeSmartspace, "admin@home.io", "points_desc", 10, 0)
	if !errors.Is(err, domainerrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for unknown sort field, got %v", err)
	}
}

func TestListUsersPaginationPastEnd(t *testing.T) {
	service, _ := newService(adminUser())

	users := make([]entities.User, 0, 10)
	for _, email := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		users = append(users, foreignUser(email+"@other.io"))
	}
	if _, err := service.ImportUsers(context.Background(), homeSmartspace, "admin@home.io", users); err != nil {
		t.Fatalf("seed import failed: %v", err)
	}

	// 11 users total (admin included); page 1 of size 10 holds exactly one.
	page, err := service.ListUsers(context.Background(), homeSmartspace, "admin@home.io", "", 10, 1)
	if err != nil {
		t.Fatalf("paginate failed: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("expected 1 user on second page, got %d", len(page))
	}
}

func TestUpdateProfileSelfAndForeign(t *testing.T) {
	player := foreignUser("player@other.io")
	service, _ := newService(adminUser(), player, foreignUser("victim@other.io"))

	name := "renamed"
	updated, err := service.UpdateProfile(context.Background(), player.Smartspace, player.Email,
		player.Key, entities.UserPatch{Username: &name})
	if err != nil {
		t.Fatalf("self update failed: %v", err)
	}
	if updated.Username != "renamed" || updated.Avatar != player.Avatar {
		t.Fatalf("merge update went wrong: %+v", updated)
	}

	victim := entities.UserKey{Smartspace: "2019b.other", Email: "victim@other.io"}
	if _, err := service.UpdateProfile(context.Background(), player.Smartspace, player.Email,
		victim, entities.UserPatch{Username: &name}); !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("player must not update someone else, got %v", err)
	}
}

func TestUpdateProfileMissingUser(t *testing.T) {
	service, _ := newService(adminUser())

	name := "ghost"
	_, err := service.UpdateProfile(context.Background(), homeSmartspace, "admin@home.io",
		entities.UserKey{Smartspace: "2019b.other", Email: "ghost@other.io"},
		entities.UserPatch{Username: &name})
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
