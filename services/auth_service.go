package services

import (
	"errors"
	"strings"
	"time"

	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/pkg/apperr"
	"github.com/cristianbbs/kolder-backend/repository"
	"github.com/cristianbbs/kolder-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{UserRepo: repo, jwtSecret: secret, jwtTTL: ttl}
}

type ProfileOut struct {
	ID      uint        `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    entity.Role `json:"role"`
	Company *struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		ContactName string `json:"contactName"`
	} `json:"company"`
}

func toProfile(u *entity.User) *ProfileOut {
	out := &ProfileOut{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
	if u.Company != nil {
		out.Company = &struct {
			ID          uint   `json:"id"`
			Name        string `json:"name"`
			ContactName string `json:"contactName"`
		}{ID: u.Company.ID, Name: u.Company.Name, ContactName: u.Company.ContactName}
	}
	return out
}

// Login verifies credentials and issues a token. An expired provisional
// password blocks the account on the spot.
func (s *AuthService) Login(email, password string) (string, bool, *ProfileOut, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil, apperr.New(401, "BAD_CREDENTIALS", "invalid credentials")
	}
	if err != nil {
		return "", false, nil, err
	}
	if user.IsBlocked {
		return "", false, nil, apperr.New(401, "BAD_CREDENTIALS", "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", false, nil, apperr.New(401, "BAD_CREDENTIALS", "invalid credentials")
	}

	if user.MustChangePassword {
		if user.ProvisionalExpiresAt == nil || time.Now().After(*user.ProvisionalExpiresAt) {
			_ = s.UserRepo.Update(user.ID, map[string]any{"is_blocked": true})
			return "", false, nil, apperr.New(403, "PROVISIONAL_EXPIRED", "provisional password expired, request a new one")
		}
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", false, nil, err
	}

	full, err := s.UserRepo.FindByIDWithCompany(user.ID)
	if err != nil {
		return "", false, nil, err
	}
	return token, user.MustChangePassword, toProfile(full), nil
}

func (s *AuthService) Profile(userID uint) (*ProfileOut, error) {
	user, err := s.UserRepo.FindByIDWithCompany(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// ChangePassword verifies the old password and clears the provisional flags.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.BadBody("new password must be at least 8 characters")
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperr.New(400, "BAD_PASSWORD", "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.Update(userID, map[string]any{
		"password_hash":          string(hash),
		"must_change_password":   false,
		"provisional_expires_at": nil,
		"is_blocked":             false,
	})
}
