package royalty

import (
	"errors"
	"testing"
	"time"
)

func TestStorePutGetDelete(t *testing.T) {
	st := NewStore(time.Minute)
	s := NewSession("s-1", BookMetadata{}, nil)
	st.Put(s)

	got, err := st.Get("s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != s {
		t.Fatal("get returned a different session")
	}

	st.Delete("s-1")
	if _, err := st.Get("s-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStoreGetUnknownID(t *testing.T) {
	st := NewStore(time.Minute)
	if _, err := st.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStoreExpiryAndRefresh(t *testing.T) {
	current := time.Unix(0, 0)
	st := NewStore(time.Minute)
	st.now = func() time.Time { return current }

	st.Put(NewSession("s-1", BookMetadata{}, nil))

	// Access just before expiry refreshes the deadline.
	current = current.Add(50 * time.Second)
	if _, err := st.Get("s-1"); err != nil {
		t.Fatalf("get before expiry: %v", err)
	}

	current = current.Add(50 * time.Second)
	if _, err := st.Get("s-1"); err != nil {
		t.Fatalf("get after refresh: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := st.Get("s-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestStoreSweep(t *testing.T) {
	current := time.Unix(0, 0)
	st := NewStore(time.Minute)
	st.now = func() time.Time { return current }

	st.Put(NewSession("old", BookMetadata{}, nil))
	current = current.Add(30 * time.Second)
	st.Put(NewSession("fresh", BookMetadata{}, nil))

	current = current.Add(45 * time.Second)
	if removed := st.Sweep(); removed != 1 {
		t.Fatalf("sweep removed %d, want 1", removed)
	}
	if st.Len() != 1 {
		t.Fatalf("live sessions = %d, want 1", st.Len())
	}
	if _, err := st.Get("fresh"); err != nil {
		t.Fatalf("fresh session swept: %v", err)
	}
}
