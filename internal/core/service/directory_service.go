package service

import (
	"context"

	"github.com/workdesk/request-system/internal/core/domain"
	"github.com/workdesk/request-system/internal/core/ports"
)

// DirectoryService serves the read-only user listings behind the assignment
// and manager-selection pickers.
type DirectoryService struct {
	users ports.UserRepository
}

func NewDirectoryService(users ports.UserRepository) *DirectoryService {
	return &DirectoryService{users: users}
}

func (s *DirectoryService) ListManagers(ctx context.Context) ([]domain.UserRef, error) {
	return s.listByRole(ctx, domain.RoleManager)
}

func (s *DirectoryService) ListEmployees(ctx context.Context) ([]domain.UserRef, error) {
	return s.listByRole(ctx, domain.RoleEmployee)
}

func (s *DirectoryService) listByRole(ctx context.Context, role domain.Role) ([]domain.UserRef, error) {
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	refs := make([]domain.UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, u.Ref())
	}
	return refs, nil
}
