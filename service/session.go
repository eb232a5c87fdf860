// Package service contains background and persistence logic that doesn't
// belong in the request handlers directly
package service

import (
	"bitwise74/drive-api/model"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrSessionInvalid covers every expected refresh-token failure: unknown
// token, expired token, or a token consumed by an earlier rotation. Callers
// must not leak which one it was
var ErrSessionInvalid = errors.New("invalid or expired refresh token")

// Sessions manages the server-side half of refresh tokens
type Sessions struct {
	DB         *gorm.DB
	RefreshTTL time.Duration
}

func NewSessions(db *gorm.DB, refreshTTL time.Duration) *Sessions {
	return &Sessions{
		DB:         db,
		RefreshTTL: refreshTTL,
	}
}

// Create persists a new refresh session for the given user and returns the
// stored token value
func (s *Sessions) Create(userID uint, token string) error {
	return s.DB.
		Create(&model.Session{
			Token:     token,
			UserID:    userID,
			ExpiresAt: time.Now().Add(s.RefreshTTL),
		}).
		Error
}

// Verify looks up a refresh token and returns its owner. Expired rows are
// deleted on the spot so the table doesn't accumulate stale sessions.
// A valid row is left untouched, consumption only happens in Rotate
func (s *Sessions) Verify(token string) (uint, error) {
	var session model.Session

	err := s.DB.
		Where("token = ?", token).
		First(&session).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSessionInvalid
		}
		return 0, err
	}

	if time.Now().After(session.ExpiresAt) {
		if err := s.DB.Delete(&model.Session{}, session.ID).Error; err != nil {
			zap.L().Error("Failed to delete expired session", zap.Error(err))
		}
		return 0, ErrSessionInvalid
	}

	return session.UserID, nil
}

// Rotate exchanges a presented refresh token for a fresh one. The old row is
// deleted and the new one inserted inside a single transaction so a failure
// anywhere rolls back to the pre-rotation state instead of leaving the user
// with no valid session
func (s *Sessions) Rotate(token, newToken string) (uint, error) {
	userID, err := s.Verify(token)
	if err != nil {
		return 0, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("token = ?", token).
			Delete(&model.Session{})
		if res.Error != nil {
			return res.Error
		}

		// A concurrent rotation already consumed this token
		if res.RowsAffected == 0 {
			return ErrSessionInvalid
		}

		return tx.
			Create(&model.Session{
				Token:     newToken,
				UserID:    userID,
				ExpiresAt: time.Now().Add(s.RefreshTTL),
			}).
			Error
	})
	if err != nil {
		return 0, err
	}

	return userID, nil
}
