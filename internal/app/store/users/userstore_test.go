package userstore

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
	"github.com/productdesignexperts/api.connexus.team/internal/testutil"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  user@example.com  ", "user@example.com"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeEmail(c.in); got != c.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInsertDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	u := models.User{Email: "dup@example.com", FirstName: "First"}
	if _, err := store.Insert(ctx, u); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	_, err := store.Insert(ctx, models.User{Email: "dup@example.com", FirstName: "Second"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("second insert: got %v, want ErrDuplicateEmail", err)
	}
}

func TestGetActiveByEmailExcludesDeleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	id, err := store.Insert(ctx, models.User{Email: "gone@example.com"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := db.Collection("users").UpdateByID(ctx, id, bson.M{"$set": bson.M{"deleted": true}}); err != nil {
		t.Fatalf("mark deleted: %v", err)
	}

	if _, err := store.GetActiveByEmail(ctx, "gone@example.com"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("active lookup of deleted user: got %v, want ErrNoDocuments", err)
	}
	if _, err := store.GetByEmail(ctx, "gone@example.com"); err != nil {
		t.Fatalf("unrestricted lookup: %v", err)
	}
}

func TestEnsureLegacyAdminIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	first, err := store.EnsureLegacyAdmin(ctx)
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	second, err := store.EnsureLegacyAdmin(ctx)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same admin document, got %s and %s", first.ID.Hex(), second.ID.Hex())
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": LegacyAdminEmail})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 admin document, got %d", n)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("expected password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected wrong password to fail")
	}
}
