package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rajmi/ecommerce-backend/internal/config"
	"github.com/rajmi/ecommerce-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Provider tags a federated identity source. Identity resolution takes the
// tag as an explicit parameter instead of registering strategies against a
// shared singleton.
type Provider string

const (
	ProviderGoogle   Provider = "google"
	ProviderFacebook Provider = "facebook"
)

func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderFacebook:
		return ProviderFacebook, nil
	}
	return "", ErrUnknownProvider
}

// FederatedProfile is what a federated callback asserts about the caller.
// ProviderID, Username and Email are hints trusted as-is unless an identity
// token is present and the provider is configured for verification, in
// which case the verified claims win.
type FederatedProfile struct {
	Provider      Provider
	ProviderID    string
	Username      string
	Email         string
	IdentityToken string
}

// IdentityService resolves credentials or federated profiles into exactly
// one canonical user record, creating it if absent.
type IdentityService struct {
	db        *gorm.DB
	timeout   time.Duration
	verifiers map[Provider]*IDTokenVerifier
}

func NewIdentityService(db *gorm.DB, cfg *config.Config) *IdentityService {
	verifiers := make(map[Provider]*IDTokenVerifier)
	if cfg.GoogleClientID != "" {
		verifiers[ProviderGoogle] = NewGoogleIDTokenVerifier(cfg.GoogleClientID)
	}
	return &IdentityService{db: db, timeout: cfg.DBTimeout, verifiers: verifiers}
}

func (s *IdentityService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashStr := string(hash)
	user := models.User{
		Username:     username,
		Email:        &email,
		PasswordHash: &hashStr,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// ResolveLocal authenticates an email/password pair. Unknown email and a
// wrong password both return ErrInvalidCredentials; bcrypt's comparison is
// constant time over the hash. A storage failure is not a bad credential
// and surfaces as an internal error.
func (s *IdentityService) ResolveLocal(ctx context.Context, email, password string) (*models.User, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == nil {
		// Federated-only account: no password to check.
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ResolveOrCreateFederated looks a user up by (provider, provider id) —
// falling back to the asserted email — and creates the record when nothing
// matches. Safe to call repeatedly with the same profile: a create that
// loses a uniqueness race degrades to fetching the winner's row.
func (s *IdentityService) ResolveOrCreateFederated(ctx context.Context, profile FederatedProfile) (*models.User, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	if v, ok := s.verifiers[profile.Provider]; ok && profile.IdentityToken != "" {
		claims, err := v.Verify(profile.IdentityToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidIdentityToken, err)
		}
		profile.ProviderID = claims.Subject
		if claims.Email != "" {
			profile.Email = claims.Email
		}
		if profile.Username == "" && claims.Name != "" {
			profile.Username = claims.Name
		}
	}

	column, err := providerColumn(profile.Provider)
	if err != nil {
		return nil, err
	}
	if profile.ProviderID == "" {
		return nil, fmt.Errorf("%w: missing provider id", ErrInvalidIdentityToken)
	}

	var user models.User
	query := s.db.WithContext(ctx).Where(column+" = ?", profile.ProviderID)
	if profile.Email != "" {
		query = s.db.WithContext(ctx).Where(column+" = ? OR email = ?", profile.ProviderID, profile.Email)
	}

	err = query.First(&user).Error
	switch {
	case err == nil:
		// Matched by email only: attach the federated id to the account.
		if linkedID(&user, profile.Provider) == nil {
			if err := s.db.WithContext(ctx).Model(&user).Update(column, profile.ProviderID).Error; err != nil {
				return nil, fmt.Errorf("failed to link %s identity: %w", profile.Provider, err)
			}
			setLinkedID(&user, profile.Provider, profile.ProviderID)
		}
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.createFederated(ctx, profile, column)
	default:
		return nil, fmt.Errorf("failed to look up %s user: %w", profile.Provider, err)
	}
}

func (s *IdentityService) createFederated(ctx context.Context, profile FederatedProfile, column string) (*models.User, error) {
	user := models.User{Username: profile.Username}
	if profile.Email != "" {
		email := profile.Email
		user.Email = &email
	}
	setLinkedID(&user, profile.Provider, profile.ProviderID)

	err := s.db.WithContext(ctx).Create(&user).Error
	if err == nil {
		return &user, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a create race with an identical profile; fetch the winner.
		var existing models.User
		if ferr := s.db.WithContext(ctx).Where(column+" = ?", profile.ProviderID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
	}
	return nil, fmt.Errorf("failed to create %s user: %w", profile.Provider, err)
}

func providerColumn(p Provider) (string, error) {
	switch p {
	case ProviderGoogle:
		return "google_id", nil
	case ProviderFacebook:
		return "facebook_id", nil
	}
	return "", ErrUnknownProvider
}

func linkedID(u *models.User, p Provider) *string {
	switch p {
	case ProviderGoogle:
		return u.GoogleID
	case ProviderFacebook:
		return u.FacebookID
	}
	return nil
}

func setLinkedID(u *models.User, p Provider, id string) {
	switch p {
	case ProviderGoogle:
		u.GoogleID = &id
	case ProviderFacebook:
		u.FacebookID = &id
	}
}
