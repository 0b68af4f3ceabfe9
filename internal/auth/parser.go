package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nurpe/ecosweep/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Parser struct {
	secret []byte
	parser *jwt.Parser
}

func NewParser(secret string) *Parser {
	return &Parser{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Parse validates an access token and returns the principal it carries.
func (p *Parser) Parse(token string) (model.Principal, error) {
	claims := &Claims{}
	parsed, err := p.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return model.Principal{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: invalid subject", ErrInvalidToken)
	}
	role, ok := normalizeRole(claims.Role)
	if !ok {
		return model.Principal{}, fmt.Errorf("%w: invalid role", ErrInvalidToken)
	}

	return model.Principal{UserID: userID, Role: role}, nil
}

// Issue signs an access token for the principal.
func Issue(secret string, principal model.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func normalizeRole(raw string) (model.Role, bool) {
	switch model.Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case model.RoleCustomer:
		return model.RoleCustomer, true
	case model.RoleCleaner:
		return model.RoleCleaner, true
	case model.RoleAdmin:
		return model.RoleAdmin, true
	default:
		return "", false
	}
}
