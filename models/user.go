package models

import "gorm.io/gorm"

// User is a registered player account.
type User struct {
	gorm.Model
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:72;not null" json:"-"` // Don't expose password hash
	Nickname     string `gorm:"size:64;uniqueIndex;not null"`
	AccessToken  string `gorm:"size:256;uniqueIndex;not null" json:"-"`
}
