package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"smartspace/contexts/spatial-catalog/element-service/domain/entities"
	domainerrors "smartspace/contexts/spatial-catalog/element-service/domain/errors"
)

func testElement(id string, name string, elementType string) entities.Element {
	return entities.Element{
		Key:      entities.ElementKey{Smartspace: "2019b.test", ID: id},
		Name:     name,
		Type:     elementType,
		Location: entities.Location{Lat: 10, Lng: 10},
	}
}

func TestCreateThenReadBack(t *testing.T) {
	store := NewStore(nil)
	element := testElement("e1", "fountain", "poi")
	element.Attributes = map[string]any{"height": 3.5}

	created, err := store.Create(context.Background(), element)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	got, found, err := store.GetByKey(context.Background(), created.Key)
	if err != nil || !found {
		t.Fatalf("read back failed: found=%v err=%v", found, err)
	}
	if got.Name != "fountain" || got.Attributes["height"] != 3.5 {
		t.Fatalf("read back mismatch: %+v", got)
	}
}

func TestStoredAttributesAreIsolated(t *testing.T) {
	store := NewStore(nil)
	element := testElement("e1", "fountain", "poi")
	element.Attributes = map[string]any{"height": 3.5}
	if _, err := store.Create(context.Background(), element); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Mutating the caller's map must not reach the stored copy.
	element.Attributes["height"] = 99.0
	got, _, _ := store.GetByKey(context.Background(), element.Key)
	if got.Attributes["height"] != 3.5 {
		t.Fatalf("stored attributes leaked caller mutation: %v", got.Attributes["height"])
	}
}

func TestCreateDuplicateKey(t *testing.T) {
	store := NewStore(nil)
	if _, err := store.Create(context.Background(), testElement("e1", "a", "poi")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := store.Create(context.Background(), testElement("e1", "b", "poi")); !errors.Is(err, domainerrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestPaginateByField(t *testing.T) {
	store := NewStore(nil)
	for i := 0; i < 5; i++ {
		elementType := "bench"
		if i%2 == 0 {
			elementType = "fountain"
		}
		if _, err := store.Create(context.Background(),
			testElement(fmt.Sprintf("e%d", i), fmt.Sprintf("n%d", i), elementType)); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	fountains, err := store.PaginateByField(context.Background(), "type", "fountain", 10, 0)
	if err != nil {
		t.Fatalf("paginate by type failed: %v", err)
	}
	if len(fountains) != 3 {
		t.Fatalf("expected 3 fountains, got %d", len(fountains))
	}

	named, err := store.PaginateByField(context.Background(), "name", "n1", 10, 0)
	if err != nil {
		t.Fatalf("paginate by name failed: %v", err)
	}
	if len(named) != 1 || named[0].Key.ID != "e1" {
		t.Fatalf("unexpected name match: %+v", named)
	}

	if _, err := store.PaginateByField(context.Background(), "creator", "x", 10, 0); !errors.Is(err, domainerrors.ErrInvalidArgument) {
		t.Fatalf("unknown field must be rejected, got %v", err)
	}
}

func TestPaginateByDistance(t *testing.T) {
	store := NewStore(nil)
	near := testElement("near", "a", "poi")
	near.Location = entities.Location{Lat: 1, Lng: 1}
	far := testElement("far", "b", "poi")
	far.Location = entities.Location{Lat: 50, Lng: 50}
	for _, element := range []entities.Element{near, far} {
		if _, err := store.Create(context.Background(), element); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	hits, err := store.PaginateByDistance(context.Background(), 0, 0, 5, 10, 0)
	if err != nil {
		t.Fatalf("paginate by distance failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Key.ID != "near" {
		t.Fatalf("expected only the near element, got %+v", hits)
	}

	// An element exactly on the radius boundary counts as inside.
	edge := testElement("edge", "c", "poi")
	edge.Location = entities.Location{Lat: 3, Lng: 4}
	if _, err := store.Create(context.Background(), edge); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	hits, _ = store.PaginateByDistance(context.Background(), 0, 0, 5, 10, 0)
	if len(hits) != 2 {
		t.Fatalf("boundary element must be included, got %d hits", len(hits))
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	store := NewStore(nil)
	original := testElement("e1", "fountain", "poi")
	original.Attributes = map[string]any{"height": 3.5}
	if _, err := store.Create(context.Background(), original); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newName := "renamed"
	updated, err := store.Update(context.Background(), original.Key, entities.ElementPatch{Name: &newName})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "renamed" || updated.Type != "poi" || updated.Attributes["height"] != 3.5 {
		t.Fatalf("merge touched unprovided fields: %+v", updated)
	}

	if _, err := store.Update(context.Background(), entities.ElementKey{Smartspace: "2019b.test", ID: "missing"},
		entities.ElementPatch{Name: &newName}); !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("update of missing element must fail, got %v", err)
	}
}

func TestDeleteSemantics(t *testing.T) {
	store := NewStore(nil)
	element := testElement("e1", "a", "poi")
	if _, err := store.Create(context.Background(), element); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := store.Delete(context.Background(), element.Key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(context.Background(), element.Key); !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("single delete of missing key must fail, got %v", err)
	}
	if err := store.DeleteAll(context.Background()); err != nil {
		t.Fatalf("deleteAll on empty store must be a no-op, got %v", err)
	}
}

func TestImportAllUpserts(t *testing.T) {
	store := NewStore(nil)
	first := testElement("e1", "a", "poi")
	if _, err := store.Create(context.Background(), first); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	changed := first
	changed.Name = "b"
	if _, err := store.ImportAll(context.Background(),
		[]entities.Element{changed, testElement("e2", "c", "poi")}); err != nil {
		t.Fatalf("importAll failed: %v", err)
	}
	all, _ := store.ReadAll(context.Background())
	if len(all) != 2 {
		t.Fatalf("upsert must not duplicate, have %d elements", len(all))
	}
	got, _, _ := store.GetByKey(context.Background(), first.Key)
	if got.Name != "b" {
		t.Fatalf("import must overwrite, got name %q", got.Name)
	}
}
