package admin

import (
	"testing"
	"time"

	"github.com/louisbranch/crm-console/internal/core/usertable"
)

func TestViewSessionStoreExpiresSessions(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newViewSessionStore(10 * time.Minute)
	store.now = func() time.Time { return now }

	id, session := store.Create()
	if got, ok := store.Get(id); !ok || got != session {
		t.Fatalf("Get(%q) = %v, %v", id, got, ok)
	}

	now = now.Add(9 * time.Minute)
	if _, ok := store.Get(id); !ok {
		t.Fatal("session expired before its TTL")
	}

	now = now.Add(11 * time.Minute)
	if _, ok := store.Get(id); ok {
		t.Fatal("expected session to expire")
	}
	if session.update(func(s usertable.Snapshot) usertable.Snapshot { return s }) {
		t.Fatal("expired session should reject updates")
	}
}

func TestViewSessionStoreCleanupPurgesExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newViewSessionStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Create()
	store.Create()
	now = now.Add(viewSessionCleanupInterval + time.Minute)
	store.Create()
	if got := store.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
}

func TestViewSessionDeleteDiscardsLateLoads(t *testing.T) {
	store := newViewSessionStore(time.Minute)
	id, session := store.Create()
	store.Delete(id)

	applied := session.update(func(s usertable.Snapshot) usertable.Snapshot {
		return s.WithRows([]usertable.UserRecord{{UserID: "u1"}})
	})
	if applied {
		t.Fatal("disposed session accepted an update")
	}
	if snapshot, _ := session.state(); snapshot.Total() != 0 {
		t.Fatalf("snapshot total = %d", snapshot.Total())
	}
}

func TestViewSessionLoadingCountsOverlappingLoads(t *testing.T) {
	session := newViewSession()
	session.SetLoading(true)
	session.SetLoading(true)
	session.SetLoading(false)
	if _, loading := session.state(); !loading {
		t.Fatal("expected loading while one load remains")
	}
	session.SetLoading(false)
	session.SetLoading(false)
	if _, loading := session.state(); loading {
		t.Fatal("expected loading cleared")
	}
}

func TestViewSessionMountOnce(t *testing.T) {
	session := newViewSession()
	if !session.claimMount() {
		t.Fatal("first claim should mount")
	}
	if session.claimMount() {
		t.Fatal("second claim should not mount")
	}
	session.unmount()
	if !session.claimMount() {
		t.Fatal("unmounted session should mount again")
	}
}
