package ports

import (
	"context"

	"github.com/workdesk/request-system/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create persists a new user. A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users matching ids. Missing ids are skipped, not
	// errors; callers use this to hydrate request views.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	// ListIDsByManager returns the ids of users whose manager_id equals managerID.
	ListIDsByManager(ctx context.Context, managerID string) ([]string, error)
}
