package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a portal account (admin back office, supplier ops, agency API).
// CompanyID links supplier and agency users to the company they act for.
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	role         Role
	companyID    *uuid.UUID
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email, passwordHash string, role Role, companyID *uuid.UUID) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		companyID:    companyID,
		isActive:     true,
	}
}

func ReconstructUser(
	id uuid.UUID,
	email, passwordHash string,
	role Role,
	companyID *uuid.UUID,
	lastLogin *time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		companyID:    companyID,
		lastLogin:    lastLogin,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Email() string         { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) CompanyID() *uuid.UUID { return u.companyID }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
