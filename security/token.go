package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Tokens mints and verifies the two credential kinds: short-lived signed
// access tokens and long-lived opaque refresh tokens. Refresh tokens carry
// no semantics on their own, the sessions table is the source of truth
type Tokens struct {
	secret    []byte
	accessTTL time.Duration
}

func NewTokens(secret []byte, accessTTL time.Duration) *Tokens {
	return &Tokens{
		secret:    secret,
		accessTTL: accessTTL,
	}
}

// IssueAccessToken signs a new HS256 access token for the given user
func (t *Tokens) IssueAccessToken(userID uint) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"iat":  now.Unix(),
		"exp":  now.Add(t.accessTTL).Unix(),
		"type": "access",
	})

	return token.SignedString(t.secret)
}

// IssueRefreshToken returns a new opaque refresh token value. The caller is
// responsible for persisting it before handing it out
func (t *Tokens) IssueRefreshToken() string {
	return uuid.NewString()
}

// VerifyAccessToken checks the signature, expiry and type of an access token
// and returns the subject user ID. Expected failure modes come back as
// ErrExpiredToken or ErrInvalidToken, never as a panic or a false positive
func (t *Tokens) VerifyAccessToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", tok.Method.Alg())
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	// A refresh or any other token kind must never pass as an access token
	if typ, _ := claims["type"].(string); typ != "access" {
		return 0, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}

// AccessTTLSeconds returns the access token lifetime as the expires_in
// value used in token responses
func (t *Tokens) AccessTTLSeconds() int64 {
	return int64(t.accessTTL.Seconds())
}
