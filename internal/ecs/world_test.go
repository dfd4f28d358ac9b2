package ecs

import "testing"

// stub components used only in tests
type testComp struct{ val int }

func (testComp) Type() ComponentType { return 1 }

type otherComp struct{}

func (otherComp) Type() ComponentType { return 2 }

func TestCreateEntity(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	if id == NilEntity {
		t.Fatal("expected non-nil entity ID")
	}
	if !w.Alive(id) {
		t.Fatal("expected entity to be alive after creation")
	}
	if w.Len() != 1 {
		t.Fatalf("Len = %d, want 1", w.Len())
	}
}

func TestLookupTyped(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Add(id, testComp{val: 42})

	tc, ok := Lookup[testComp](w, id)
	if !ok {
		t.Fatal("expected component")
	}
	if tc.val != 42 {
		t.Fatalf("expected val=42, got %d", tc.val)
	}
	if _, ok := Lookup[otherComp](w, id); ok {
		t.Fatal("Lookup returned a component that was never added")
	}
}

func TestDestroyEntityRemovesComponents(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Add(id, testComp{val: 7})
	w.DestroyEntity(id)

	if w.Alive(id) {
		t.Fatal("entity should not be alive after DestroyEntity")
	}
	if w.Has(id, ComponentType(1)) {
		t.Fatal("component should be gone after DestroyEntity")
	}
	if w.Len() != 0 {
		t.Fatalf("Len = %d after destroy, want 0", w.Len())
	}
}

func TestQueryFiltersAndOrders(t *testing.T) {
	w := NewWorld()

	var both []EntityID
	for i := 0; i < 5; i++ {
		id := w.CreateEntity()
		w.Add(id, testComp{})
		if i%2 == 0 {
			w.Add(id, otherComp{})
			both = append(both, id)
		}
	}

	got := w.Query(ComponentType(1), ComponentType(2))
	if len(got) != len(both) {
		t.Fatalf("expected %d results, got %d", len(both), len(got))
	}
	for i := range got {
		if got[i] != both[i] {
			t.Fatalf("result %d = %v, want %v (ascending ID order)", i, got[i], both[i])
		}
	}
}

func TestQueryExcludesDeadEntities(t *testing.T) {
	w := NewWorld()
	alive := w.CreateEntity()
	w.Add(alive, testComp{})

	dead := w.CreateEntity()
	w.Add(dead, testComp{})
	w.DestroyEntity(dead)

	results := w.Query(ComponentType(1))
	if len(results) != 1 || results[0] != alive {
		t.Fatalf("expected only the alive entity; got %v", results)
	}
}

func TestQueryNoTypes(t *testing.T) {
	w := NewWorld()
	w.CreateEntity()
	if got := w.Query(); got != nil {
		t.Fatalf("Query() = %v, want nil", got)
	}
}
