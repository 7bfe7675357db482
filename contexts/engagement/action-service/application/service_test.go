package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"smartspace/contexts/engagement/action-service/adapters/memory"
	"smartspace/contexts/engagement/action-service/domain/entities"
	domainerrors "smartspace/contexts/engagement/action-service/domain/errors"
	"smartspace/contexts/engagement/action-service/ports"
)

var (
	admin   = ports.ActorRecord{Smartspace: "2019b.home", Email: "admin@home.io", Role: ports.RoleAdmin}
	manager = ports.ActorRecord{Smartspace: "2019b.home", Email: "manager@home.io", Role: ports.RoleManager}
	player  = ports.ActorRecord{Smartspace: "2019b.home", Email: "player@home.io", Role: ports.RolePlayer}

	bench = entities.ElementRef{Smartspace: "2019b.home", ID: "bench-1"}
)

func newService() (Service, *memory.Store) {
	store := memory.NewStore(
		[]ports.ActorRecord{admin, manager, player},
		[]entities.ElementRef{bench},
	)
	return Service{
		Repo:     store,
		Users:    store,
		Elements: store,
		Scores:   store,
		Clock:    store,
	}, store
}

func testAction(id string, actionType string) entities.Action {
	return entities.Action{
		Key:     entities.ActionKey{Smartspace: "2019b.home", ID: id},
		Type:    actionType,
		Element: bench,
		Player:  entities.PlayerRef{Smartspace: player.Smartspace, Email: player.Email},
	}
}

func TestImportCommitsBatchAndAwardsPoints(t *testing.T) {
	service, store := newService()

	imported, err := service.ImportActions(context.Background(), admin.Smartspace, admin.Email,
		[]entities.Action{testAction("1", "checkin"), testAction("2", "message")})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(imported) != 2 {
		t.Fatalf("expected 2 committed actions, got %d", len(imported))
	}
	for _, action := range imported {
		if action.Created.IsZero() {
			t.Fatalf("action %s must carry a creation timestamp", action.Key)
		}
	}
	if got := store.PointsOf(player.Smartspace, player.Email); got != 7 {
		t.Fatalf("checkin plus message must award 7 points, got %d", got)
	}
}

func TestImportDeniedForManagerAndPlayer(t *testing.T) {
	service, store := newService()

	for _, actor := range []ports.ActorRecord{manager, player} {
		_, err := service.ImportActions(context.Background(), actor.Smartspace, actor.Email,
			[]entities.Action{testAction("1", "checkin")})
		if !errors.Is(err, domainerrors.ErrAccessDenied) {
			t.Fatalf("%s import must be denied, got %v", actor.Role, err)
		}
	}
	all, _ := store.ReadAll(context.Background())
	if len(all) != 0 {
		t.Fatalf("denied calls must not mutate the store, have %d actions", len(all))
	}
	if got := store.PointsOf(player.Smartspace, player.Email); got != 0 {
		t.Fatalf("denied calls must not accrue points, got %d", got)
	}
}

func TestImportAtomicOnInvalidCandidate(t *testing.T) {
	service, store := newService()

	bad := testAction("2", "checkin")
	bad.Type = ""
	_, err := service.ImportActions(context.Background(), admin.Smartspace, admin.Email,
		[]entities.Action{testAction("1", "checkin"), bad})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	all, _ := store.ReadAll(context.Background())
	if len(all) != 0 {
		t.Fatalf("failed batch must persist nothing, have %d actions", len(all))
	}
	if got := store.PointsOf(player.Smartspace, player.Email); got != 0 {
		t.Fatalf("failed batch must not accrue points, got %d", got)
	}
}

func TestImportAtomicOnUnknownElement(t *testing.T) {
	service, store := newService()

	dangling := testAction("2", "checkin")
	dangling.Element = entities.ElementRef{Smartspace: "2019b.home", ID: "no-such-element"}
	_, err := service.ImportActions(context.Background(), admin.Smartspace, admin.Email,
		[]entities.Action{testAction("1", "checkin"), dangling})
	if !errors.Is(err, domainerrors.ErrReferential) {
		t.Fatalf("expected referential error, got %v", err)
	}
	all, _ := store.ReadAll(context.Background())
	if len(all) != 0 {
		t.Fatalf("referential failure must persist nothing, have %d actions", len(all))
	}
}

func TestImportAtomicOnUnknownPlayer(t *testing.T) {
	service, store := newService()

	dangling := testAction("1", "checkin")
	dangling.Player = entities.PlayerRef{Smartspace: "2019b.home", Email: "ghost@home.io"}
	_, err := service.ImportActions(context.Background(), admin.Smartspace, admin.Email,
		[]entities.Action{dangling})
	if !errors.Is(err, domainerrors.ErrReferential) {
		t.Fatalf("expected referential error, got %v", err)
	}
	all, _ := store.ReadAll(context.Background())
	if len(all) != 0 {
		t.Fatalf("referential failure must persist nothing, have %d actions", len(all))
	}
}

func TestImportStagesOutboxEvents(t *testing.T) {
	service, store := newService()

	if _, err := service.ImportActions(context.Background(), admin.Smartspace, admin.Email,
		[]entities.Action{testAction("1", "checkin"), testAction("2", "message")}); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected one staged event per action, got %d", len(pending))
	}
}

func TestCustomPointsRule(t *testing.T) {
	service, store := newService()
	service.Points = func(actionType string) int64 { return 10 }

	if _, err := service.ImportActions(context.Background(), admin.Smartspace, admin.Email,
		[]entities.Action{testAction("1", "whatever")}); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if got := store.PointsOf(player.Smartspace, player.Email); got != 10 {
		t.Fatalf("injected rule must decide the award, got %d", got)
	}
}

func TestListRequiresAdminOrManager(t *testing.T) {
	service, _ := newService()

	if _, err := service.ListActions(context.Background(), player.Smartspace, player.Email, "", 10, 0); !errors.Is(err, domainerrors.ErrAccessDenied) {
		t.Fatalf("player listing must be denied, got %v", err)
	}
	if _, err := service.ListActions(context.Background(), manager.Smartspace, manager.Email, "", 10, 0); err != nil {
		t.Fatalf("manager listing failed: %v", err)
	}
}

func TestListRejectsUnknownSortField(t *testing.T) {
	service, _ := newService()

	_, err := service.ListActions(context.Background(), admin.Smartspace, admin.Email, "player", 10, 0)
	if !errors.Is(err, domainerrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestListPagination(t *testing.T) {
	service, _ := newService()

	batch := make([]entities.Action, 0, 11)
	for i := 0; i < 11; i++ {
		batch = append(batch, testAction(fmt.Sprintf("%02d", i), "checkin"))
	}
	if _, err := service.ImportActions(context.Background(), admin.Smartspace, admin.Email, batch); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	first, err := service.ListActions(context.Background(), admin.Smartspace, admin.Email, "", 10, 0)
	if err != nil {
		t.Fatalf("page 0 failed: %v", err)
	}
	if len(first) != 10 {
		t.Fatalf("page 0 must hold 10 actions, got %d", len(first))
	}
	second, err := service.ListActions(context.Background(), admin.Smartspace, admin.Email, "", 10, 1)
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("page 1 must hold the single trailing action, got %d", len(second))
	}
	third, err := service.ListActions(context.Background(), admin.Smartspace, admin.Email, "", 10, 2)
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	if len(third) != 0 {
		t.Fatalf("page past the end must be empty, got %d", len(third))
	}
}
