package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"news-portal/internal/domain/entity"
)

// ErrInvalidToken covers every way a bearer token can fail to verify.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims issued at login.
// Subject holds the user id and ID holds the revocable jti.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into a use case actor.
func (c *Claims) Actor() (entity.Actor, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return entity.Actor{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	role := entity.Role(c.Role)
	if !role.Valid() {
		return entity.Actor{}, fmt.Errorf("%w: bad role", ErrInvalidToken)
	}
	return entity.Actor{UserID: id, Role: role}, nil
}

// IssuedToken is a signed token together with the values needed to revoke it.
type IssuedToken struct {
	Value     string
	JTI       string
	ExpiresAt time.Time
}

// TokenService issues and verifies HS256 tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a TokenService signing with secret.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a new token for user.
func (s *TokenService) Issue(user *entity.User) (IssuedToken, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	jti := uuid.NewString()

	claims := Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return IssuedToken{Value: signed, JTI: jti, ExpiresAt: exp}, nil
}

// Parse verifies tokenString and returns its claims.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}
	return claims, nil
}
