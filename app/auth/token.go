package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/vastrakart/go-storefront/app/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the signed token payload. The permission list is computed from
// the role table at issuance; it is not stored anywhere.
type Claims struct {
	Username    string   `json:"username"`
	Email       string   `json:"email,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (int, error) {
	return strconv.Atoi(c.Subject)
}

func (c *Claims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (c *Claims) HasRole(roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// TokenService signs and verifies the stateless session tokens. The secret,
// token lifetime, and role table are all injected at construction.
type TokenService struct {
	secret          []byte
	expiresIn       time.Duration
	rolePermissions map[string][]string
}

func NewTokenService(secret string, expiresIn time.Duration, rolePermissions map[string][]string) *TokenService {
	return &TokenService{
		secret:          []byte(secret),
		expiresIn:       expiresIn,
		rolePermissions: rolePermissions,
	}
}

// PermissionsForRole returns the static capability list for a role, empty for
// unknown roles.
func (s *TokenService) PermissionsForRole(role string) []string {
	return s.rolePermissions[role]
}

func (s *TokenService) ExpiresIn() time.Duration {
	return s.expiresIn
}

func (s *TokenService) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		Permissions: s.PermissionsForRole(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
