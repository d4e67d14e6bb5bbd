package service

import (
	"errors"
	"fmt"
	"time"

	"fulfillment-ledger/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errUnknownRole = errors.New("unknown role")

// accessClaims is the payload of an access token. The subject is the wallet
// owner for merchants and the staff member's id otherwise.
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenService issues and checks HS256 access tokens.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
	parser *jwt.Parser
}

func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

func (s *JWTTokenService) Generate(subject uuid.UUID, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := accessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate rejects tokens that are expired, foreign, unsigned, or that carry a
// role this service does not know.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	var claims accessClaims
	if _, err := s.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}
	switch claims.Role {
	case ports.RoleMerchant, ports.RoleOperator, ports.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w %q", errUnknownRole, claims.Role)
	}

	return &ports.TokenClaims{Subject: subject, Role: claims.Role}, nil
}
