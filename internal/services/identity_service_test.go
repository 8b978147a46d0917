package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rajmi/ecommerce-backend/internal/models"
)

func TestRegisterAndResolveLocal(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db, testConfig())
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user id to be assigned")
	}
	if user.PasswordHash == nil || *user.PasswordHash == "s3cretpass" {
		t.Fatal("password must be stored hashed")
	}

	resolved, err := svc.ResolveLocal(ctx, "alice@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("ResolveLocal: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("resolved user %d, want %d", resolved.ID, user.ID)
	}
}

func TestResolveLocalFailuresAreIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db, testConfig())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, wrongPass := svc.ResolveLocal(ctx, "alice@example.com", "wrong")
	_, unknownEmail := svc.ResolveLocal(ctx, "nobody@example.com", "s3cretpass")

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", wrongPass)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", unknownEmail)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db, testConfig())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Register(ctx, "alice2", "alice@example.com", "otherpass1")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestResolveLocalFederatedOnlyAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db, testConfig())
	ctx := context.Background()

	_, err := svc.ResolveOrCreateFederated(ctx, FederatedProfile{
		Provider:   ProviderGoogle,
		ProviderID: "g-123",
		Email:      "fed@example.com",
		Username:   "fed",
	})
	if err != nil {
		t.Fatalf("ResolveOrCreateFederated: %v", err)
	}

	// No password hash on the account: a local login must not succeed.
	if _, err := svc.ResolveLocal(ctx, "fed@example.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestFederatedResolveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db, testConfig())
	ctx := context.Background()

	profile := FederatedProfile{
		Provider:   ProviderFacebook,
		ProviderID: "fb-42",
		Email:      "bob@example.com",
		Username:   "bob",
	}

	first, err := svc.ResolveOrCreateFederated(ctx, profile)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := svc.ResolveOrCreateFederated(ctx, profile)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("resolved two users (%d, %d) for one profile", first.ID, second.ID)
	}

	var count int64
	db.Table("users").Count(&count)
	if count != 1 {
		t.Fatalf("user count = %d, want 1", count)
	}
}

func TestFederatedResolveLinksExistingEmailAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db, testConfig())
	ctx := context.Background()

	local, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	resolved, err := svc.ResolveOrCreateFederated(ctx, FederatedProfile{
		Provider:   ProviderGoogle,
		ProviderID: "g-777",
		Email:      "alice@example.com",
		Username:   "alice",
	})
	if err != nil {
		t.Fatalf("ResolveOrCreateFederated: %v", err)
	}
	if resolved.ID != local.ID {
		t.Fatalf("resolved user %d, want existing account %d", resolved.ID, local.ID)
	}
	if resolved.GoogleID == nil || *resolved.GoogleID != "g-777" {
		t.Fatal("expected google id to be linked onto the existing account")
	}

	// Local credentials keep working after the link.
	if _, err := svc.ResolveLocal(ctx, "alice@example.com", "s3cretpass"); err != nil {
		t.Fatalf("ResolveLocal after link: %v", err)
	}
}

func TestFederatedResolveWithoutProviderID(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db, testConfig())

	_, err := svc.ResolveOrCreateFederated(context.Background(), FederatedProfile{
		Provider: ProviderGoogle,
		Email:    "x@example.com",
	})
	if !errors.Is(err, ErrInvalidIdentityToken) {
		t.Fatalf("got %v, want ErrInvalidIdentityToken", err)
	}
}

func TestParseProvider(t *testing.T) {
	if _, err := ParseProvider("google"); err != nil {
		t.Fatalf("google: %v", err)
	}
	if _, err := ParseProvider("facebook"); err != nil {
		t.Fatalf("facebook: %v", err)
	}
	if _, err := ParseProvider("github"); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("github: got %v, want ErrUnknownProvider", err)
	}
}

func TestResolveLocalStorageFailureIsNotCredentialError(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db, testConfig())
	ctx := context.Background()

	if err := db.Migrator().DropTable(&models.User{}); err != nil {
		t.Fatalf("drop users table: %v", err)
	}

	_, err := svc.ResolveLocal(ctx, "alice@example.com", "s3cretpass")
	if err == nil {
		t.Fatal("expected lookup to fail")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("storage failure was reported as ErrInvalidCredentials: %v", err)
	}
}
