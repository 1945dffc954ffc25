package model

import "time"

// Employee is a register operator. Employees are never deleted; the document
// (national id) is the login handle and must be unique.
type Employee struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Document string `gorm:"uniqueIndex;not null"`
	// CredentialHash is a bcrypt hash; the plain secret is never stored.
	CredentialHash string `gorm:"not null"`
	CreatedAt      time.Time
}
