package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

// CookieCodec signs session keys into HS256 tokens so a client cannot pick another
// client's key.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieCodec(secret string, ttl time.Duration) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), ttl: ttl}
}

func (c *CookieCodec) Encode(key string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        key,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing session cookie failed")
	}
	return token, nil
}

// Decode returns the session key carried by value, rejecting bad signatures, other
// algorithms and expired tokens.
func (c *CookieCodec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", errors.Wrap(err, "parsing session cookie failed")
	}
	if !token.Valid || claims.ID == "" {
		return "", errors.New("invalid session cookie")
	}
	return claims.ID, nil
}
