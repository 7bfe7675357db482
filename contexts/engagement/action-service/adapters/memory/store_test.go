package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"smartspace/contexts/engagement/action-service/domain/entities"
	domainerrors "smartspace/contexts/engagement/action-service/domain/errors"
	"smartspace/contexts/engagement/action-service/ports"
)

var (
	seedActor   = ports.ActorRecord{Smartspace: "2019b.test", Email: "p@t.io", Role: ports.RolePlayer}
	seedElement = entities.ElementRef{Smartspace: "2019b.test", ID: "e1"}
)

func newSeededStore() *Store {
	return NewStore([]ports.ActorRecord{seedActor}, []entities.ElementRef{seedElement})
}

func testAction(id string) entities.Action {
	return entities.Action{
		Key:     entities.ActionKey{Smartspace: "2019b.test", ID: id},
		Type:    "checkin",
		Element: seedElement,
		Player:  entities.PlayerRef{Smartspace: seedActor.Smartspace, Email: seedActor.Email},
	}
}

func TestCreateThenReadBack(t *testing.T) {
	store := newSeededStore()
	created, err := store.Create(context.Background(), testAction("a1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	got, found, err := store.GetByKey(context.Background(), created.Key)
	if err != nil || !found {
		t.Fatalf("read back failed: found=%v err=%v", found, err)
	}
	if !got.Key.Equal(created.Key) || got.Type != created.Type {
		t.Fatalf("read back mismatch: %+v vs %+v", got, created)
	}
}

func TestCreateDuplicateKey(t *testing.T) {
	store := newSeededStore()
	if _, err := store.Create(context.Background(), testAction("a1")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := store.Create(context.Background(), testAction("a1")); !errors.Is(err, domainerrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestCreateWithoutKey(t *testing.T) {
	store := newSeededStore()
	if _, err := store.Create(context.Background(), entities.Action{Type: "checkin"}); !errors.Is(err, domainerrors.ErrInvalidKey) {
		t.Fatalf("expected invalid key, got %v", err)
	}
}

func TestSeededProjections(t *testing.T) {
	store := newSeededStore()

	if _, found, _ := store.GetActor(context.Background(), seedActor.Smartspace, seedActor.Email); !found {
		t.Fatal("seeded actor must resolve")
	}
	if _, found, _ := store.GetActor(context.Background(), seedActor.Smartspace, "ghost@t.io"); found {
		t.Fatal("unknown actor must not resolve")
	}
	if exists, _ := store.ElementExists(context.Background(), seedElement.Smartspace, seedElement.ID); !exists {
		t.Fatal("seeded element must resolve")
	}
	if exists, _ := store.ElementExists(context.Background(), seedElement.Smartspace, "e2"); exists {
		t.Fatal("unknown element must not resolve")
	}
}

func TestPaginateEdges(t *testing.T) {
	store := newSeededStore()
	for i := 0; i < 10; i++ {
		if _, err := store.Create(context.Background(), testAction(fmt.Sprintf("a%02d", i))); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	page, err := store.Paginate(context.Background(), "key", 10, 1)
	if err != nil {
		t.Fatalf("paginate failed: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("page past the data must be empty, got %d", len(page))
	}

	page, err = store.Paginate(context.Background(), "key", 4, 2)
	if err != nil {
		t.Fatalf("paginate failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected trailing partial page of 2, got %d", len(page))
	}
	if page[0].Key.ID != "a08" {
		t.Fatalf("unexpected page start %s", page[0].Key.ID)
	}
}

func TestDeleteSemantics(t *testing.T) {
	store := newSeededStore()
	if _, err := store.Create(context.Background(), testAction("a1")); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := store.Delete(context.Background(), testAction("a1").Key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(context.Background(), testAction("a1").Key); !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("single delete of missing key must fail, got %v", err)
	}

	// Bulk delete stays quiet either way.
	if err := store.DeleteAll(context.Background()); err != nil {
		t.Fatalf("first deleteAll failed: %v", err)
	}
	if err := store.DeleteAll(context.Background()); err != nil {
		t.Fatalf("second deleteAll must be a no-op, got %v", err)
	}
}

func TestImportAllStagesOutbox(t *testing.T) {
	store := newSeededStore()

	if _, err := store.ImportAll(context.Background(),
		[]entities.Action{testAction("a1"), testAction("a2")}); err != nil {
		t.Fatalf("importAll failed: %v", err)
	}
	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 staged events, got %d", len(pending))
	}

	if err := store.MarkOutboxSent(context.Background(), pending[0].OutboxID, store.Now()); err != nil {
		t.Fatalf("mark sent failed: %v", err)
	}
	remaining, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(remaining) != 1 {
		t.Fatalf("expected 1 pending event after marking, got %d", len(remaining))
	}
	if err := store.MarkOutboxSent(context.Background(), "no-such-id", store.Now()); !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("marking an unknown row must fail, got %v", err)
	}
}

func TestImportUpsertsExisting(t *testing.T) {
	store := newSeededStore()

	first := testAction("a1")
	if _, err := store.Create(context.Background(), first); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	changed := first
	changed.Type = "message"
	if _, err := store.Import(context.Background(), changed); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	got, _, _ := store.GetByKey(context.Background(), first.Key)
	if got.Type != "message" {
		t.Fatalf("import must overwrite, got type %q", got.Type)
	}
	all, _ := store.ReadAll(context.Background())
	if len(all) != 1 {
		t.Fatalf("upsert must not duplicate, have %d actions", len(all))
	}
}

func TestConcurrentAddPoints(t *testing.T) {
	store := newSeededStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.AddPoints(context.Background(), seedActor.Smartspace, seedActor.Email, 3); err != nil {
				t.Errorf("addPoints failed: %v", err)
			}
		}()
	}
	wg.Wait()
	if got := store.PointsOf(seedActor.Smartspace, seedActor.Email); got != 60 {
		t.Fatalf("expected 60 points, got %d", got)
	}
}

func TestAddPointsUnknownPlayer(t *testing.T) {
	store := newSeededStore()
	if err := store.AddPoints(context.Background(), "2019b.test", "ghost@t.io", 3); err == nil {
		t.Fatal("addPoints for an unknown player must fail")
	}
}
