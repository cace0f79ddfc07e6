package cart

import "testing"

func TestManagerReturnsSameStorePerSession(t *testing.T) {
	m := NewManager(nil)
	a := m.Get("session-a")
	if a != m.Get("session-a") {
		t.Fatalf("expected same store for same session")
	}
	if a == m.Get("session-b") {
		t.Fatalf("expected distinct stores for distinct sessions")
	}
}

func TestManagerRestoresFromFactoryPersister(t *testing.T) {
	persisters := map[string]*memoryPersister{}
	m := NewManager(func(sessionID string) Persister {
		p := &memoryPersister{}
		persisters[sessionID] = p
		return p
	})

	s := m.Get("session-a")
	mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 1)

	if persisters["session-a"].saveHits != 1 {
		t.Fatalf("expected session persister to receive the write")
	}
	if _, ok := persisters["session-b"]; ok {
		t.Fatalf("factory must be called lazily")
	}
}
