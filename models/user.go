package models

import "gorm.io/gorm"

type User struct {
	gorm.Model `json:"-"`
	Username   string `gorm:"uniqueIndex;not null" json:"username" binding:"required"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty" binding:"required"`
}
