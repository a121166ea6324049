package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ABeGood/klim-fit/internal/models"
	"github.com/ABeGood/klim-fit/pkg/utils"
)

type UserAccountStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (bool, error)
}

type AdminAccountStore interface {
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (bool, error)
}

type AuthService struct {
	userRepo  UserAccountStore
	adminRepo AdminAccountStore
}

func NewAuthService(userRepo UserAccountStore, adminRepo AdminAccountStore) *AuthService {
	return &AuthService{userRepo: userRepo, adminRepo: adminRepo}
}

type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Age      *int
	WeightKG *float64
}

// RegisterUser creates a user account. The email must be unused across
// both users and admins.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterInput) (*models.User, error) {
	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Surname:  strings.TrimSpace(input.Surname),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Age:      input.Age,
		WeightKG: input.WeightKG,
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	taken, err := s.emailTaken(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) emailTaken(ctx context.Context, email string) (bool, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}
	if _, err := s.adminRepo.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}
	return false, nil
}

// AuthenticateUser returns the user for a matching email/password
// pair. Unknown email and wrong password are indistinguishable.
func (s *AuthService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" || !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// AuthenticateAdmin is the admin-table counterpart of AuthenticateUser.
func (s *AuthService) AuthenticateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if admin.PasswordHash == "" || !utils.CheckPassword(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// GetUser fetches a user by id, mapping a missing row to ErrNotFound.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GetAdmin(ctx context.Context, id int64) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}

// ChangeUserPassword verifies the current password before storing the
// new hash.
func (s *AuthService) ChangeUserPassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if user.PasswordHash == "" || !utils.CheckPassword(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	updated, err := s.userRepo.UpdatePassword(ctx, userID, hash)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

func (s *AuthService) ChangeAdminPassword(ctx context.Context, adminID int64, currentPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if admin.PasswordHash == "" || !utils.CheckPassword(currentPassword, admin.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	updated, err := s.adminRepo.UpdatePassword(ctx, adminID, hash)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}
