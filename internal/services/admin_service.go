package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/meridian-legal/insights-backend/internal/auth"
	"github.com/meridian-legal/insights-backend/internal/models"
	repo "github.com/meridian-legal/insights-backend/internal/repository"
)

// ErrInvalidCredentials covers both unknown email and wrong password so a
// login failure never reveals which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminService struct {
	r  repo.Admins
	tm *auth.TokenManager
}

func NewAdminService(r repo.Admins, tm *auth.TokenManager) *AdminService {
	return &AdminService{r: r, tm: tm}
}

// Session is what login and register hand back to the client.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Admin     models.Admin
}

func (s *AdminService) Register(ctx context.Context, username, email, password string) (Session, error) {
	a := models.Admin{Username: strings.TrimSpace(username), Email: strings.TrimSpace(email)}
	if err := a.Validate(); err != nil {
		return Session{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Session{}, err
	}
	id, err := s.r.Create(ctx, a.Username, a.Email, hash)
	if err != nil {
		return Session{}, err
	}
	a.ID = id
	return s.newSession(a)
}

func (s *AdminService) Login(ctx context.Context, email, password string) (Session, error) {
	a, err := s.r.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if err := auth.VerifyPassword(password, a.PasswordHash); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.newSession(a)
}

// Me resolves a principal by id, without the password hash.
func (s *AdminService) Me(ctx context.Context, id int64) (models.Admin, error) {
	return s.r.GetByID(ctx, id)
}

// Update applies a partial profile change; a new password is re-hashed
// before it reaches storage.
func (s *AdminService) Update(ctx context.Context, id int64, patch models.AdminPatch) error {
	var hash *string
	if patch.Password != nil {
		h, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return err
		}
		hash = &h
	}
	affected, err := s.r.Update(ctx, id, patch.Username, patch.Email, hash)
	if err != nil {
		return err
	}
	if affected == 0 && (patch.Username != nil || patch.Email != nil || hash != nil) {
		return repo.ErrNotFound
	}
	return nil
}

func (s *AdminService) newSession(a models.Admin) (Session, error) {
	token, exp, err := s.tm.Generate(a.ID, a.Username)
	if err != nil {
		return Session{}, err
	}
	a.PasswordHash = ""
	return Session{Token: token, ExpiresAt: exp, Admin: a}, nil
}
