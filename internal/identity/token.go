package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"assignment-service/internal/user"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// GenerateToken signs an HS256 access token whose subject is the user id.
func GenerateToken(secret string, userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// TokenResolver resolves the actor from an Authorization bearer JWT. Any
// parse or validation failure leaves the request anonymous; the role guard
// downstream decides whether anonymity is acceptable.
type TokenResolver struct {
	users  user.Repository
	secret []byte
}

func NewTokenResolver(users user.Repository, secret string) *TokenResolver {
	return &TokenResolver{users: users, secret: []byte(secret)}
}

func (tr *TokenResolver) Resolve(r *http.Request) (*user.User, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, nil
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, bearerPrefix), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tr.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, nil
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return nil, nil
	}

	actor, err := tr.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return actor, nil
}
