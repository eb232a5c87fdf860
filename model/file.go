package model

import "time"

type File struct {
	ID uint `gorm:"primaryKey;autoIncrement;index" json:"id"`

	// Original file name as uploaded. Different users may upload files with
	// the same name so the stored object lives under StorageKey instead
	Name        string `gorm:"not null" json:"fileName"`
	ContentType string `json:"fileType"`
	Size        int64  `json:"fileSize"`

	// Backend-specific location of the bytes, never shown to users
	StorageKey string `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

// FileOwnership maps a file to the user that owns it. The unique index on
// FileID is what enforces the one-owner-per-file rule, not application code
type FileOwnership struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"not null;index" json:"userId"`
	FileID uint `gorm:"not null;uniqueIndex" json:"fileId"`
}
