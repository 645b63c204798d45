package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// TokenIssuer mints and verifies the HMAC tokens used by the platform.
type TokenIssuer struct {
	secret []byte
	issuer string
}

func NewTokenIssuer(secret []byte, issuer string) *TokenIssuer {
	return &TokenIssuer{secret: secret, issuer: issuer}
}

// TokenPair holds an access/refresh token pair for a login response.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Issue returns a fresh access/refresh pair for the given user.
func (ti *TokenIssuer) Issue(userID, userType string) (*TokenPair, error) {
	access, err := ti.sign(userID, userType, "access", AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := ti.sign(userID, userType, "refresh", RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(AccessTokenTTL.Seconds()),
	}, nil
}

func (ti *TokenIssuer) sign(userID, userType, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    ti.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserType: userType,
		Roles:    []string{userType},
		TokenUse: use,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
}

// VerifyRefresh parses a refresh token and returns its claims.
func (ti *TokenIssuer) VerifyRefresh(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid refresh token")
	}
	if claims.TokenUse != "refresh" {
		return nil, fmt.Errorf("token is not a refresh token")
	}
	return claims, nil
}
