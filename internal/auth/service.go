package auth

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	errors "github.com/frahmantamala/office-management/internal"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	GetByEmail(email string) (*Admin, error)
	GetByID(adminID int64) (*Admin, error)
	Create(admin *Admin) error
	ExistsByEmail(email string) (bool, error)
}

// Service is the main auth service with dependencies
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGenerator
	bcryptCost     int
}

// NewService creates a new auth service
func NewService(repo RepositoryAPI, tokenGen TokenGenerator, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
	}
}

// NewJWTTokenGenerator creates a new JWT token generator
func NewJWTTokenGenerator(secret string, tokenTTL time.Duration) *JWTTokenGenerator {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: tokenTTL,
	}
}

// Authenticate validates credentials and returns a token with the admin
// profile. Unknown emails and wrong passwords both map to invalid
// credentials so callers cannot probe which emails exist.
func (s *Service) Authenticate(dto LoginDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	admin, err := s.repo.GetByEmail(dto.NormalizedEmail())
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateAccessToken(admin.ID, admin.Email)
	if err != nil {
		return nil, errors.NewInternalError("failed to sign token", err)
	}

	return &AuthResponse{Token: token, Admin: admin}, nil
}

// Register creates a new admin account and logs it in.
func (s *Service) Register(dto RegisterDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := dto.NormalizedEmail()

	exists, err := s.repo.ExistsByEmail(email)
	if err != nil {
		return nil, errors.NewInternalError("failed to check existing admin", err)
	}
	if exists {
		return nil, errors.NewConflictError("Admin with this email already exists", errors.ErrCodeAdminExists)
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	admin := &Admin{
		Name:         strings.TrimSpace(dto.Name),
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(admin); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, errors.NewInternalError("failed to create admin", err)
	}

	token, err := s.tokenGenerator.GenerateAccessToken(admin.ID, admin.Email)
	if err != nil {
		return nil, errors.NewInternalError("failed to sign token", err)
	}

	return &AuthResponse{Token: token, Admin: admin}, nil
}

// ValidateAccessToken validates the token signature and expiry.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetAdminByID loads the admin behind a set of claims. The middleware
// calls this on every request so revoked accounts lose access
// immediately, not at token expiry.
func (s *Service) GetAdminByID(adminID int64) (*Admin, error) {
	admin, err := s.repo.GetByID(adminID)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}
	return admin, nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateAccessToken creates a signed token carrying the admin identity.
func (j *JWTTokenGenerator) GenerateAccessToken(adminID int64, email string) (string, error) {
	now := time.Now()

	claims := &Claims{
		AdminID: adminID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", adminID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.ErrInvalidToken
}
