package user

import (
	"context"
	"fmt"

	"github.com/paydivvy/paydivvy/internal/rest"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const UserKey contextKey = "user"

// ErrNoUser wraps the unauthenticated sentinel so a request that somehow
// reaches a service without a session renders as 401, not a server error.
var ErrNoUser = fmt.Errorf("no user in context: %w", rest.ErrUnauthenticated)

// CurrentId retrieves the current user's ID from the context. Returns ErrNoUser if ID not present in context.
func CurrentId(ctx context.Context) (int, error) {
	user, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("user not found in context")
		return 0, ErrNoUser
	}
	return user.Id, nil
}

func CurrentUser(ctx context.Context) (User, error) {
	user, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("user not found in context")
		return User{}, ErrNoUser
	}
	return user, nil
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
