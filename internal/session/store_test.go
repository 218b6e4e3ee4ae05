package session

import "testing"

func TestStoreRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	// Missing file loads as empty state.
	state, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if state.LastFile != "" || state.PrevFile != "" {
		t.Errorf("expected empty state, got %+v", state)
	}

	state.LastFile = "notes/a.md"
	state.PrevFile = "notes/b.md"
	if err := store.Save(state); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded != state {
		t.Errorf("got %+v, want %+v", loaded, state)
	}
}
