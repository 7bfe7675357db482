package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"smartspace/contexts/spatial-catalog/element-service/adapters/memory"
	"smartspace/contexts/spatial-catalog/element-service/domain/entities"
	domainerrors "smartspace/contexts/spatial-catalog/element-service/domain/errors"
	"smartspace/contexts/spatial-catalog/element-service/ports"
)

var (
	admin   = ports.ActorRecord{Smartspace: "2019b.home", Email: "admin@home.io", Role: ports.RoleAdmin}
	manager = ports.ActorRecord{Smartspace: "2019b.home", Email: "manager@home.io", Role: ports.RoleManager}
	player  = ports.ActorRecord{Smartspace: "2019b.home", Email: "player@home.io", Role: ports.RolePlayer}
)

func newService(expiryReversible bool) (Service, *memory.Store) {
	store := memory.NewStore([]ports.ActorRecord{admin, manager, player})
	return Service{
		Repo:             store,
		Users:            store,
		Clock:            store,
		ExpiryReversible: expiryReversible,
	}, store
}

func testElement(id string) entities.Element {
	return entities.Element{
		Key:      entities.ElementKey{Smartspace: "2019b.home", ID: id},
		Name:     "bench-" + id,
		Type:     "bench",
		Location: entities.Location{Lat: 32.1, Lng: 34.8},
	}
}

func importOne(t *testing.T, service Service, element entities.Element) entities.Element {
	t.Helper()
	imported, err := service.ImportElements(context.Background(), admin.Smartspace, admin.Email,
		[]entities.Element{element})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	return imported[0]
}

func TestImportAssignsCreationTimestampOnce(t *testing.T) {
	service, _ := newService(false)

	imported := importOne(t, service, testElement("1"))
	if imported.Created.IsZero() {
		t.Fatal("import must assign a creation timestamp")
	}
	if imported.CreatorSmartspace != admin.Smartspace || imported.CreatorEmail != admin.Email {
		t.Fatalf("import must record the creator, got %s#%s", imported.CreatorSmartspace, imported.CreatorEmail)
	}

	again, err := service.ImportElements(context.Background(), admin.Smartspace, admin.Email,
		[]entities.Element{imported})
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if !again[0].Created.Equal(imported.Created) {
		t.Fatalf("creation timestamp changed across re-import: %v vs %v", again[0].Created, imported.Created)
	}
}

func TestImportAtomicOnInvalidCandidate(t *testing.T) {
	service, store := newService(false)

	bad := testElement("2")
	bad.Name = ""
	_, err := service.ImportElements(context.Background(), admin.Smartspace, admin.Email,
		[]entities.Element{testElement("1"), bad})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	all, _ := store.ReadAll(context.Background())
	if len(all) != 0 {
		t.Fatalf("failed batch must persist nothing, have %d elements", len(all))
	}
}

func TestImportDeniedForManagerAndPlayer(t *testing.T) {
	service, store := newService(false)

	for _, actor := range []ports.ActorRecord{manager, player} {
		_, err := service.ImportElements(context.Background(), actor.Smartspace, actor.Email,
			[]entities.Element{testElement("1")})
		if !errors.Is(err, domainerrors.ErrAccessDenied) {
			t.Fatalf("%s import must be denied, got %v", actor.Role, err)
		}
	}
	all, _ := store.ReadAll(context.Background())
	if len(all) != 0 {
		t.Fatalf("denied calls must not mutate the store, have %d elements", len(all))
	}
}

func TestExpiredElementVisibility(t *testing.T) {
	service, _ := newService(false)

	element := testElement("1")
	element.Expired = true
	imported := importOne(t, service, element)

	if _, err := service.GetElement(context.Background(), player.Smartspace, player.Email, imported.Key); !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expired element must look missing to a player, got %v", err)
	}
	for _, actor := range []ports.ActorRecord{manager, admin} {
		got, err := service.GetElement(context.Background(), actor.Smartspace, actor.Email, imported.Key)
		if err != nil {
			t.Fatalf("%s read failed: %v", actor.Role, err)
		}
		if !got.Expired {
			t.Fatalf("%s must see the expired flag", actor.Role)
		}
	}
}

func TestPlayerDeniedListing(t *testing.T) {
	service, _ := newService(false)
	if _, err := service.ListElements(context.Background(), player.Smartspace, player.Email, "", 10, 0); !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("player listing must be denied, got %v", err)
	}
}

func TestSearchByValueAndUnknownField(t *testing.T) {
	service, _ := newService(false)
	importOne(t, service, testElement("1"))
	fountain := testElement("2")
	fountain.Name = "fountain"
	fountain.Type = "fountain"
	importOne(t, service, fountain)

	found, err := service.SearchByValue(context.Background(), manager.Smartspace, manager.Email, "type", "fountain", 10, 0)
	if err != nil {
		t.Fatalf("search by type failed: %v", err)
	}
	if len(found) != 1 || found[0].Type != "fountain" {
		t.Fatalf("unexpected search result: %+v", found)
	}

	if _, err := service.SearchByValue(context.Background(), manager.Smartspace, manager.Email, "creator", "x", 10, 0); !errors.Is(err, domainerrors.ErrInvalidArgument) {
		t.Fatalf("unknown search field must be invalid, got %v", err)
	}
}

func TestSearchByLocationRadius(t *testing.T) {
	service, _ := newService(false)

	near := testElement("near")
	near.Location = entities.Location{Lat: 10, Lng: 10}
	far := testElement("far")
	far.Location = entities.Location{Lat: 50, Lng: 50}
	importOne(t, service, near)
	importOne(t, service, far)

	found, err := service.SearchByLocation(context.Background(), manager.Smartspace, manager.Email, 11, 11, 5, 10, 0)
	if err != nil {
		t.Fatalf("location search failed: %v", err)
	}
	if len(found) != 1 || found[0].Key.ID != "near" {
		t.Fatalf("expected only the near element, got %+v", found)
	}
}

func TestPaginationEleventhElement(t *testing.T) {
	service, _ := newService(false)
	for i := 0; i < 11; i++ {
		importOne(t, service, testElement(fmt.Sprintf("%02d", i)))
	}

	page, err := service.ListElements(context.Background(), admin.Smartspace, admin.Email, "", 10, 1)
	if err != nil {
		t.Fatalf("paginate failed: %v", err)
	}
	if len(page) != 1 || page[0].Key.ID != "10" {
		t.Fatalf("expected exactly the 11th element, got %+v", page)
	}
}

func TestExpiryOneWayByDefault(t *testing.T) {
	service, _ := newService(false)
	element := testElement("1")
	element.Expired = true
	imported := importOne(t, service, element)

	revive := false
	_, err := service.UpdateElement(context.Background(), admin.Smartspace, admin.Email,
		imported.Key, entities.ElementPatch{Expired: &revive})
	if !errors.Is(err, domainerrors.ErrInvalidArgument) {
		t.Fatalf("one-way policy must reject reviving, got %v", err)
	}
}

func TestExpiryReversibleWhenEnabled(t *testing.T) {
	service, _ := newService(true)
	element := testElement("1")
	element.Expired = true
	imported := importOne(t, service, element)

	revive := false
	updated, err := service.UpdateElement(context.Background(), admin.Smartspace, admin.Email,
		imported.Key, entities.ElementPatch{Expired: &revive})
	if err != nil {
		t.Fatalf("reversible policy must allow reviving: %v", err)
	}
	if updated.Expired {
		t.Fatal("element should no longer be expired")
	}
}

func TestUpdateKeepsCreationTimestamp(t *testing.T) {
	service, _ := newService(false)
	imported := importOne(t, service, testElement("1"))

	name := "renamed"
	updated, err := service.UpdateElement(context.Background(), manager.Smartspace, manager.Email,
		imported.Key, entities.ElementPatch{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Created.Equal(imported.Created) {
		t.Fatalf("update must not touch creation timestamp: %v vs %v", updated.Created, imported.Created)
	}
	if updated.Name != "renamed" || updated.Type != imported.Type {
		t.Fatalf("merge went wrong: %+v", updated)
	}
}
