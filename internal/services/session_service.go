package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rajmi/ecommerce-backend/internal/config"
	"github.com/rajmi/ecommerce-backend/internal/models"
	"gorm.io/gorm"
)

const sessionTokenBytes = 32

// SessionService maps opaque client-held tokens to live user records.
// Tokens are random 256-bit values; only their SHA-256 digest is stored.
type SessionService struct {
	db      *gorm.DB
	expiry  time.Duration
	timeout time.Duration
}

func NewSessionService(db *gorm.DB, cfg *config.Config) *SessionService {
	return &SessionService{db: db, expiry: cfg.SessionExpiry, timeout: cfg.DBTimeout}
}

// Create opens a session for the user and returns the raw token the client
// will carry in its cookie.
func (s *SessionService) Create(ctx context.Context, userID uint) (string, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	rawBytes := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.expiry),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return rawToken, nil
}

// Resolve turns a raw session token back into its user. An unknown token
// and a revoked or expired session both read as ErrUnauthenticated; a
// storage failure on the user fetch surfaces as an internal error so an
// outage is not mistaken for a bad credential.
func (s *SessionService) Resolve(ctx context.Context, rawToken string) (*models.User, error) {
	if rawToken == "" {
		return nil, ErrUnauthenticated
	}

	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	var session models.Session
	err := s.db.WithContext(ctx).
		Where("token_hash = ? AND revoked = ?", hashToken(rawToken), false).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if err := s.db.WithContext(ctx).Model(&session).Update("revoked", true).Error; err != nil {
			slog.Error("failed to revoke expired session", "session_id", session.ID, "error", err)
		}
		return nil, ErrUnauthenticated
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to fetch session user: %w", err)
	}
	return &user, nil
}

// Destroy revokes the server-side session record. Requests presenting the
// same token afterwards resolve as anonymous.
func (s *SessionService) Destroy(ctx context.Context, rawToken string) error {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	return s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("token_hash = ?", hashToken(rawToken)).
		Update("revoked", true).Error
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
