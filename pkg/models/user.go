package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCreator UserRole = "creator"
	RoleEditor  UserRole = "editor"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleCreator, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
	UserBanned    UserStatus = "banned"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserSuspended, UserBanned:
		return true
	}
	return false
}

type User struct {
	ID        string     `gorm:"type:uuid;primary_key" json:"id"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Firstname string     `json:"firstname"`
	Lastname  string     `json:"lastname"`
	Bio       string     `json:"bio"`
	Role      UserRole   `gorm:"type:varchar(20);default:'creator'" json:"role"`
	Status    UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
