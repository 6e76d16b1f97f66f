package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Admin is an operator account for the management console. Admins
// authenticate with email and password and receive a bearer token.
type Admin struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Admin) TableName() string {
	return "admins"
}

// Claims represents JWT token claims
type Claims struct {
	AdminID int64  `json:"id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates access tokens.
type TokenGenerator interface {
	GenerateAccessToken(adminID int64, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// ServiceAPI is the surface the HTTP handler and middleware depend on.
type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*AuthResponse, error)
	Register(dto RegisterDTO) (*AuthResponse, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetAdminByID(adminID int64) (*Admin, error)
}

// AuthResponse is what login and register return: the signed token plus
// the admin profile it belongs to.
type AuthResponse struct {
	Token string `json:"token"`
	Admin *Admin `json:"admin"`
}

type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}
