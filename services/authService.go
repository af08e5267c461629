package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JohnFrp/pharmacy-pos/dtos"
	"github.com/JohnFrp/pharmacy-pos/models"
	"github.com/JohnFrp/pharmacy-pos/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPendingApproval    = errors.New("account is pending admin approval")
	ErrDeactivated        = errors.New("account has been deactivated")
)

type AuthService interface {
	Login(input dtos.LoginInput) (*dtos.AuthResponse, error)
	Register(input dtos.RegisterInput) (*models.User, error)
}

type authService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) AuthService {
	return &authService{db: db}
}

func (s *authService) Login(input dtos.LoginInput) (*dtos.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsApproved {
		return nil, ErrPendingApproval
	}
	if !user.IsActive {
		return nil, ErrDeactivated
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &dtos.AuthResponse{
		Message: "Login successful",
		Token:   token,
		Role:    user.Role,
	}, nil
}

// Register creates a pending account. The very first user becomes an
// approved, active admin so a fresh install can bootstrap itself.
func (s *authService) Register(input dtos.RegisterInput) (*models.User, error) {
	if input.Password != input.ConfirmPassword {
		return nil, &ValidationError{Message: "passwords do not match"}
	}

	var existing models.User
	if err := s.db.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		return nil, &ConflictError{Message: "username already exists"}
	}
	if err := s.db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, &ConflictError{Message: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var userCount int64
	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return nil, err
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         "user",
		IsActive:     userCount == 0,
		IsApproved:   userCount == 0,
	}
	if userCount == 0 {
		user.Role = "admin"
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
