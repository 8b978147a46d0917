package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rajmi/ecommerce-backend/internal/config"
	"github.com/rajmi/ecommerce-backend/internal/models"
	"gorm.io/gorm"
)

func TestSessionRoundtrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testConfig())
	ctx := context.Background()

	user := seedUser(t, db, "alice", "alice@example.com")

	token, err := svc.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	resolved, err := svc.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("resolved user %d, want %d", resolved.ID, user.ID)
	}
}

func TestSessionTokenNotStoredRaw(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testConfig())

	user := seedUser(t, db, "alice", "alice@example.com")
	token, err := svc.Create(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var count int64
	db.Table("sessions").Where("token_hash = ?", token).Count(&count)
	if count != 0 {
		t.Fatal("raw token must never be stored")
	}
}

func TestSessionDestroy(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testConfig())
	ctx := context.Background()

	user := seedUser(t, db, "alice", "alice@example.com")
	token, err := svc.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := svc.Resolve(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, &config.Config{SessionExpiry: -time.Minute})
	ctx := context.Background()

	user := seedUser(t, db, "alice", "alice@example.com")
	token, err := svc.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Resolve(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}

	// The expired session is revoked on the failed resolve.
	var revoked bool
	db.Table("sessions").Select("revoked").Where("user_id = ?", user.ID).Scan(&revoked)
	if !revoked {
		t.Fatal("expected expired session to be revoked")
	}
}

func TestSessionResolveEmptyToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testConfig())

	if _, err := svc.Resolve(context.Background(), ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}

func TestSessionResolveDeletedUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testConfig())
	ctx := context.Background()

	user := seedUser(t, db, "alice", "alice@example.com")
	token, err := svc.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := db.Delete(user).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := svc.Resolve(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}

func TestSessionResolveUserStorageFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testConfig())
	ctx := context.Background()

	user := seedUser(t, db, "alice", "alice@example.com")
	token, err := svc.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := db.Migrator().DropTable(&models.User{}); err != nil {
		t.Fatalf("drop users table: %v", err)
	}

	_, err = svc.Resolve(ctx, token)
	if err == nil {
		t.Fatal("expected resolve to fail")
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("storage failure was reported as ErrUnauthenticated: %v", err)
	}
}

func TestSessionExpiryRevokeFailureStillRejects(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, &config.Config{SessionExpiry: -time.Minute})
	ctx := context.Background()

	user := seedUser(t, db, "alice", "alice@example.com")
	token, err := svc.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The revoke is best effort: even when the update cannot be written,
	// the expired session must still read as unauthenticated.
	err = db.Callback().Update().Before("gorm:update").Register("refuse_updates", func(tx *gorm.DB) {
		tx.AddError(errors.New("updates disabled"))
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	if _, err := svc.Resolve(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}
