package service

import (
	"go-pos-sync/internal/model"
	"go-pos-sync/internal/repository"
	"go-pos-sync/pkg/jwt"
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Login authenticates against the local users mirror, so cashiers can sign
// in while the central store is unreachable.
func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUserName(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.UserName, user.FullName, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
