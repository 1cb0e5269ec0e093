package models

import (
	"errors"
	"strings"
	"time"
)

// Admin is the single-role principal that manages insights.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminPatch carries a partial admin update. Password, when present, is the
// plaintext and must be re-hashed before storage.
type AdminPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (a *Admin) Validate() error {
	if len(strings.TrimSpace(a.Username)) < 3 {
		return errors.New("username too short")
	}
	if !strings.Contains(a.Email, "@") {
		return errors.New("invalid email")
	}
	return nil
}
