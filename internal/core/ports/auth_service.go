package ports

import (
	"context"

	"github.com/workdesk/request-system/internal/core/domain"
)

// AuthService implements registration and login. Both return a freshly
// minted token alongside the public user projection.
type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
