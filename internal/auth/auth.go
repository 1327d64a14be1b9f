package auth

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ISSUER     = "mongolens"
	AUDIENCE   = "mongolens-api"
	SigningAlg = "ES256"
)

var (
	ErrNilKey        = errors.New("signing key is nil")
	ErrEmptyOperator = errors.New("operator name is empty")
	ErrInvalidToken  = errors.New("invalid token or claims")
)

// CustomClaims identifies the operator allowed to call the API.
type CustomClaims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

// CreateToken signs an ES256 token for operator that expires after ttl.
func CreateToken(operator string, privateKey *ecdsa.PrivateKey, ttl time.Duration) (string, error) {
	if privateKey == nil {
		return "", ErrNilKey
	}
	if operator == "" {
		return "", ErrEmptyOperator
	}

	now := time.Now()
	claims := CustomClaims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    ISSUER,
			Subject:   operator,
			Audience:  []string{AUDIENCE},
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signToken, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signToken, nil
}

// VerifyToken checks signature, issuer, audience and expiry.
func VerifyToken(tokenString string, publicKey *ecdsa.PublicKey) (*CustomClaims, error) {
	if publicKey == nil {
		return nil, ErrNilKey
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	},
		jwt.WithValidMethods([]string{SigningAlg}),
		jwt.WithIssuer(ISSUER),
		jwt.WithAudience(AUDIENCE),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
