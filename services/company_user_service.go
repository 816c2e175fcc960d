package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/pkg/apperr"
	"github.com/cristianbbs/kolder-backend/repository"
	"github.com/cristianbbs/kolder-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	companyUserLimit = 10
	provisionalTTL   = 48 * time.Hour
)

// CompanyUserService covers the user administration a company admin (or the
// super admin acting on a named company) performs. Created accounts get a
// provisional password; delivering it by mail is out of scope, so the secret
// is logged and optionally echoed back for dev setups.
type CompanyUserService struct {
	UserRepo          *repository.UserRepository
	ReturnProvisional bool
}

func NewCompanyUserService(repo *repository.UserRepository, returnProvisional bool) *CompanyUserService {
	return &CompanyUserService{UserRepo: repo, ReturnProvisional: returnProvisional}
}

type CompanyUserOut struct {
	ID                 uint        `json:"id"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	Phone              string      `json:"phone"`
	Role               entity.Role `json:"role"`
	IsBlocked          bool        `json:"isBlocked"`
	MustChangePassword bool        `json:"mustChangePassword"`
}

func (s *CompanyUserService) List(p entity.Principal, explicitCompanyID *uint) (uint, []CompanyUserOut, error) {
	companyID, err := ResolveCompanyScope(p, explicitCompanyID)
	if err != nil {
		return 0, nil, err
	}
	users, err := s.UserRepo.ListByCompany(companyID)
	if err != nil {
		return 0, nil, err
	}
	out := make([]CompanyUserOut, 0, len(users))
	for _, u := range users {
		out = append(out, CompanyUserOut{
			ID:                 u.ID,
			Name:               u.Name,
			Email:              u.Email,
			Phone:              u.Phone,
			Role:               u.Role,
			IsBlocked:          u.IsBlocked,
			MustChangePassword: u.MustChangePassword,
		})
	}
	return companyID, out, nil
}

type CreateUserReq struct {
	Name      string `json:"name" binding:"required,min=2"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	CompanyID *uint  `json:"companyId"` // SUPER_ADMIN only
}

type CreatedUserOut struct {
	ID          uint   `json:"id"`
	CompanyID   uint   `json:"companyId"`
	Provisional string `json:"provisional,omitempty"`
}

func (s *CompanyUserService) Create(p entity.Principal, req *CreateUserReq) (*CreatedUserOut, error) {
	companyID, err := ResolveCompanyScope(p, req.CompanyID)
	if err != nil {
		return nil, err
	}

	count, err := s.UserRepo.CountCompanyUsers(companyID)
	if err != nil {
		return nil, err
	}
	if count >= companyUserLimit {
		return nil, apperr.New(400, "USER_LIMIT", "company already has the maximum of 10 users")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.UserRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, apperr.EmailTaken()
	}

	provisional := utils.GenerateProvisionalPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(provisional), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	expires := time.Now().Add(provisionalTTL)
	user := entity.User{
		Name:                 strings.TrimSpace(req.Name),
		Email:                email,
		Phone:                strings.TrimSpace(req.Phone),
		Role:                 entity.RoleUser,
		CompanyID:            &companyID,
		PasswordHash:         string(hash),
		MustChangePassword:   true,
		ProvisionalExpiresAt: &expires,
	}
	if err := s.UserRepo.Create(&user); err != nil {
		return nil, err
	}

	log.Printf("[COMPANY] user created id=%d company=%d by=%d (provisional password issued, expires %s)",
		user.ID, companyID, p.ID, expires.Format(time.RFC3339))

	out := &CreatedUserOut{ID: user.ID, CompanyID: companyID}
	if s.ReturnProvisional {
		out.Provisional = provisional
	}
	return out, nil
}

type ReissueOut struct {
	ID          uint      `json:"id"`
	Until       time.Time `json:"until"`
	Provisional string    `json:"provisional,omitempty"`
}

// Reissue replaces the target user's password with a fresh provisional one
// and unblocks the account.
func (s *CompanyUserService) Reissue(p entity.Principal, userID uint) (*ReissueOut, error) {
	target, err := s.findScopedUser(p, userID)
	if err != nil {
		return nil, err
	}
	if target.Role != entity.RoleUser {
		return nil, apperr.New(400, "NOT_A_USER", "only USER accounts have provisional passwords")
	}

	provisional := utils.GenerateProvisionalPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(provisional), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	until := time.Now().Add(provisionalTTL)

	if err := s.UserRepo.Update(target.ID, map[string]any{
		"password_hash":          string(hash),
		"must_change_password":   true,
		"provisional_expires_at": until,
		"is_blocked":             false,
	}); err != nil {
		return nil, err
	}

	log.Printf("[COMPANY] provisional reissued user=%d by=%d until=%s", target.ID, p.ID, until.Format(time.RFC3339))

	out := &ReissueOut{ID: target.ID, Until: until}
	if s.ReturnProvisional {
		out.Provisional = provisional
	}
	return out, nil
}

func (s *CompanyUserService) Delete(p entity.Principal, userID uint) error {
	target, err := s.findScopedUser(p, userID)
	if err != nil {
		return err
	}
	if target.Role == entity.RoleCompanyAdmin && p.Role != entity.RoleSuperAdmin {
		return apperr.New(400, "NOT_ALLOWED", "company admins can only be removed by the super admin")
	}
	if err := s.UserRepo.Delete(target.ID); err != nil {
		return err
	}
	log.Printf("[COMPANY] user deleted id=%d by=%d", target.ID, p.ID)
	return nil
}

// findScopedUser loads the target and checks it is inside the acting
// principal's company scope.
func (s *CompanyUserService) findScopedUser(p entity.Principal, userID uint) (*entity.User, error) {
	target, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, err
	}

	if p.Role == entity.RoleSuperAdmin {
		return target, nil
	}
	if !p.HasCompany() {
		return nil, apperr.NoCompany()
	}
	if target.CompanyID == nil || *target.CompanyID != *p.CompanyID {
		return nil, apperr.Forbidden()
	}
	return target, nil
}
