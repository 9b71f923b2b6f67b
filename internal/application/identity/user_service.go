package identity

import (
	"context"

	domainidentity "github.com/autoparts/backend/internal/domain/identity"
	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles the admin account operations
type UserService struct {
	users  domainidentity.UserRepository
	logger *zap.Logger
}

// NewUserService creates a user service
func NewUserService(users domainidentity.UserRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, logger: logger}
}

// List returns paginated user accounts
func (s *UserService) List(ctx context.Context, page, pageSize int) ([]UserResponse, int64, error) {
	users, total, err := s.users.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return ToUserResponses(users), total, nil
}

// ChangeRole assigns a new role to an account
func (s *UserService) ChangeRole(ctx context.Context, id uuid.UUID, rawRole string) (*UserResponse, error) {
	role, err := domainidentity.ParseRole(rawRole)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.ChangeRole(role); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user role changed",
		zap.String("user_id", id.String()),
		zap.String("role", role.String()))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes an account. An admin cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	if id == actorID {
		return shared.NewDomainError("VALIDATION_ERROR", "Cannot delete your own account")
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}
