package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Principal identifies the caller of a single request. Role is looked up
// separately per request (see Resolver); tokens never carry it.
type Principal struct {
	UserID   string
	FullName string
}

type claims struct {
	FullName string `json:"name"`
	jwt.RegisteredClaims
}

// Parser validates access tokens minted by the identity provider.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

func (p *Parser) Parse(token string) (Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Subject == "" {
		return Principal{}, ErrInvalidToken
	}
	return Principal{UserID: c.Subject, FullName: c.FullName}, nil
}
