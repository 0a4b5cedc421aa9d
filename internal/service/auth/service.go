package auth

import (
	"github.com/dentassist/dentsync/config"
	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/pkg/auth"
	"github.com/dentassist/dentsync/pkg/security"
)

// Service authenticates the clinic operator and issues access tokens.
type Service struct {
	admin  config.AdminConfig
	jwt    *auth.JWTService
	hasher security.PasswordHasher
}

func NewService(admin config.AdminConfig, jwtSvc *auth.JWTService) *Service {
	return &Service{
		admin:  admin,
		jwt:    jwtSvc,
		hasher: security.NewBcryptHasher(0),
	}
}

func (s *Service) Login(req *model.LoginRequest) (*model.TokenResponse, error) {
	if req.Username != s.admin.Username {
		return nil, model.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.admin.PasswordHash, req.Password); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(req.Username)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.jwt.Expiry().Seconds()),
	}, nil
}

func (s *Service) Validate(token string) (*auth.Claims, error) {
	return s.jwt.ValidateToken(token)
}
