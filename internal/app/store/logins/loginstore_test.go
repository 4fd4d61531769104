package loginstore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	loginstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/logins"
	"github.com/productdesignexperts/api.connexus.team/internal/domain/models"
	"github.com/productdesignexperts/api.connexus.team/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID().Hex()
	ev := models.LoginEvent{
		UserID: userID,
		Email:  "member@example.com",
		Source: loginstore.SourceWebLogin,
		IP:     "192.168.1.1",
	}

	if err := store.Create(ctx, ev); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var found models.LoginEvent
	err := db.Collection("login_events").FindOne(ctx, bson.M{"user_id": userID}).Decode(&found)
	if err != nil {
		t.Fatalf("failed to find login event: %v", err)
	}

	if found.Email != "member@example.com" {
		t.Errorf("Email: got %q, want %q", found.Email, "member@example.com")
	}
	if found.Source != loginstore.SourceWebLogin {
		t.Errorf("Source: got %q, want %q", found.Source, loginstore.SourceWebLogin)
	}
	if found.IP != "192.168.1.1" {
		t.Errorf("IP: got %q, want %q", found.IP, "192.168.1.1")
	}
	if found.Timestamp.IsZero() || time.Since(found.Timestamp) > time.Minute {
		t.Errorf("Timestamp not set to a recent time: %v", found.Timestamp)
	}
}
