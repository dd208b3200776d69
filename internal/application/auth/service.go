package auth

import (
	"context"

	"ledger-backend/internal/domain"
	"ledger-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service encapsulates registration and credential checks.
type Service struct {
	DB *gorm.DB
}

// RegisterInput for the register request body.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginInput for the login request body.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register validates input, hashes the password and creates the user.
// Duplicate usernames return ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, ErrUsernamePasswordRequired
	}
	if !validation.IsValidUsername(input.Username) {
		return nil, ErrInvalidUsername
	}
	if !validation.IsValidPassword(input.Password) {
		return nil, ErrWeakPassword
	}

	var existing domain.User
	err := s.DB.WithContext(ctx).Where("username = ?", input.Username).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login finds the user by username and verifies the password.
func (s *Service) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, ErrUsernamePasswordRequired
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("username = ?", input.Username).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUnknownUsername
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return &u, nil
}
