package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"taskpad/internal/model"
)

// Claims binds a user identity and a purpose tag into a signed token.
type Claims struct {
	UserID  string `json:"user_id"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies opaque authentication tokens. Tokens carry no
// expiry: their lifetime is bounded server-side by the active-token list, so
// logout revokes immediately instead of waiting out a TTL.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec with the given signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Sign issues a token for the user.
func (c *TokenCodec) Sign(userID uuid.UUID) (string, error) {
	claims := &Claims{
		UserID:  userID.String(),
		Purpose: model.TokenPurposeAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and purpose and returns the embedded user id.
// It performs no store lookup; revocation is checked separately against the
// user's active-token list.
func (c *TokenCodec) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	if claims.Purpose != model.TokenPurposeAuth {
		return uuid.Nil, errors.New("unexpected token purpose")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, errors.New("invalid user id in token")
	}
	return userID, nil
}
