package models

import "gorm.io/gorm"

// Character is a role-playing character sheet. Attribute scores are kept as
// text so that modifiers such as "+2" survive untouched.
type Character struct {
	gorm.Model
	Name         string `gorm:"size:128;uniqueIndex;not null"`
	Backstory    string `gorm:"type:text"`
	Profession   string `gorm:"size:64;not null"`
	Race         string `gorm:"size:64;not null"`
	Strength     string `gorm:"size:8;not null"`
	Dexterity    string `gorm:"size:8;not null"`
	Constitution string `gorm:"size:8;not null"`
	Intelligence string `gorm:"size:8;not null"`
	Wisdom       string `gorm:"size:8;not null"`
	Charisma     string `gorm:"size:8;not null"`
}
