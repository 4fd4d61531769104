package eventstore

import (
	"testing"

	"github.com/productdesignexperts/api.connexus.team/internal/testutil"
)

func TestRegisterAppendsAndCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	event := fx.CreateEvent(ctx, "Networking Breakfast")

	store := New(db)
	if err := store.Register(ctx, event.ID, "abc123", "web"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := store.Register(ctx, event.ID, "def456", "web"); err != nil {
		t.Fatalf("second register: %v", err)
	}

	got, err := store.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if got.AttendeeCount != 2 {
		t.Errorf("attendee_count: got %d, want 2", got.AttendeeCount)
	}
	if len(got.Attendees) != 2 {
		t.Fatalf("attendees: got %d, want 2", len(got.Attendees))
	}
	if got.Attendees[0].UserID != "abc123" || got.Attendees[1].UserID != "def456" {
		t.Errorf("attendee order: got %q, %q", got.Attendees[0].UserID, got.Attendees[1].UserID)
	}
	for i, a := range got.Attendees {
		if a.RegisteredAt.IsZero() {
			t.Errorf("attendee %d has zero registered_at", i)
		}
		if a.RegistrationSource != "web" {
			t.Errorf("attendee %d source: got %q, want %q", i, a.RegistrationSource, "web")
		}
	}
}

func TestListSortsUpcomingFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateEvent(ctx, "B")
	fx.CreateEvent(ctx, "A")

	store := New(db)
	docs, err := store.ListRaw(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(docs))
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("count: got %d, want 2", n)
	}
}
