package identity

import (
	"errors"
	"net/http"
	"strconv"

	"assignment-service/internal/user"
)

// Resolver turns an incoming request into a known User or nothing. A nil
// user with a nil error means the request is anonymous; resolution never
// produces an authorization failure by itself.
type Resolver interface {
	Resolve(r *http.Request) (*user.User, error)
}

// UserIDHeader is the client-supplied identity header read by HeaderResolver.
// The value is trusted at face value; there is no cryptographic verification.
const UserIDHeader = "userId"

// HeaderResolver resolves the actor from the userId header.
type HeaderResolver struct {
	users user.Repository
}

func NewHeaderResolver(users user.Repository) *HeaderResolver {
	return &HeaderResolver{users: users}
}

func (hr *HeaderResolver) Resolve(r *http.Request) (*user.User, error) {
	raw := r.Header.Get(UserIDHeader)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return nil, nil
	}

	actor, err := hr.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return actor, nil
}
