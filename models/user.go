package models

import (
	"time"
)

const UserTable = "lib_users"

type UserStatus string

const (
	StatusPending  UserStatus = "PENDING"
	StatusApproved UserStatus = "APPROVED"
	StatusRejected UserStatus = "REJECTED"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User is a library account. New accounts start PENDING and can only
// borrow after an admin approves them.
type User struct {
	ID             string     `gorm:"primaryKey;type:uuid" json:"id"`
	FullName       string     `gorm:"size:255;not null" json:"fullName"`
	Email          string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password       string     `gorm:"size:255;not null" json:"-"`
	UniversityID   int64      `gorm:"not null" json:"universityId"`
	UniversityCard string     `gorm:"size:500;not null" json:"universityCard"`
	Status         UserStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Role           UserRole   `gorm:"size:20;not null;default:'USER'" json:"role"`

	LastActivityDate *time.Time `gorm:"index" json:"lastActivityDate,omitempty"`
	LastLoginAt      *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LoginCount       int64      `gorm:"not null;default:0" json:"loginCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }

func (s UserStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
