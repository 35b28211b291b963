package ports

import (
	"context"

	"github.com/workdesk/request-system/internal/core/domain"
)

// DirectoryService exposes read-only user listings used to populate
// assignment and manager-selection pickers.
type DirectoryService interface {
	ListManagers(ctx context.Context) ([]domain.UserRef, error)
	ListEmployees(ctx context.Context) ([]domain.UserRef, error)
}
