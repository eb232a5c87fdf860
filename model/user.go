// Package model defines database models
package model

import "time"

type User struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	DisplayName string `gorm:"not null" json:"displayName"`
	// Case-sensitive exact match, enforced unique at the store level
	UserName     string    `gorm:"uniqueIndex;not null" json:"userName"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created"`
	UpdatedAt    time.Time `json:"modified"`

	Sessions   []Session       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Ownerships []FileOwnership `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
