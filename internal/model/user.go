package model

import (
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleCandidate = "candidate"
)

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"not null;default:'candidate'"` // "admin", "candidate"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
