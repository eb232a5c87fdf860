package service

import (
	"bitwise74/drive-api/model"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCleanup defines a function used to periodically cleanup expired
// refresh sessions. Expired rows are also removed lazily on verification,
// this sweep just catches sessions nobody ever presented again
func SessionCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Session cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			res := db.
				Where("expires_at < ?", time.Now()).
				Delete(&model.Session{})
			if res.Error != nil {
				zap.L().Error("Failed to cleanup expired sessions", zap.Error(res.Error))
				continue
			}

			if res.RowsAffected > 0 {
				zap.L().Debug("Cleaned up expired sessions", zap.Int64("count", res.RowsAffected))
			}
		}
	}()
}
