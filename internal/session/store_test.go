package session

import (
	"testing"
	"time"
)

func TestEnsureMintsAndReusesSessions(t *testing.T) {
	store := NewStore()

	created := store.Ensure("")
	if created.ID == "" {
		t.Fatalf("expected a fresh session id")
	}

	again := store.Ensure(created.ID)
	if again.ID != created.ID {
		t.Fatalf("session was not reused: %s vs %s", again.ID, created.ID)
	}
}

func TestRememberAndClearOrder(t *testing.T) {
	store := NewStore()
	sess := store.Ensure("")

	legacy := &Legacy{Name: "Asha", Items: []string{"Pilau"}, Timestamp: time.Now()}
	store.Remember(sess.ID, "Asha", "order-1", legacy)

	got := store.Ensure(sess.ID)
	if got.Name != "Asha" || got.OrderID != "order-1" || got.Legacy == nil {
		t.Fatalf("session not remembered: %+v", got)
	}

	store.ClearOrder(sess.ID)
	got = store.Ensure(sess.ID)
	if got.OrderID != "" {
		t.Fatalf("order reference survived the reset")
	}
	if got.Name != "Asha" {
		t.Fatalf("reset must keep the remembered name")
	}
}

func TestForgetOrderEverywhere(t *testing.T) {
	store := NewStore()
	a := store.Ensure("")
	b := store.Ensure("")

	store.Remember(a.ID, "Asha", "order-1", nil)
	store.Remember(b.ID, "Juma", "order-2", nil)

	store.ForgetOrderEverywhere("order-1")

	if got := store.Ensure(a.ID); got.OrderID != "" {
		t.Errorf("deleted order still referenced by session a")
	}
	if got := store.Ensure(b.ID); got.OrderID != "order-2" {
		t.Errorf("unrelated session lost its reference")
	}
}
