package users

import (
	"context"
	"fmt"

	"github.com/jayeuse/Inventory-System-sub000/internal/repository"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/jayeuse/Inventory-System-sub000/pkg/validator"
	"go.uber.org/zap"
)

const Path = "/api/users/"

type UserService struct {
	store  repository.Store[models.UserInfo]
	logger *zap.Logger
}

func NewUserService(store repository.Store[models.UserInfo], logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{store: store, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]models.UserInfo, error) {
	return s.store.List(ctx, nil)
}

func (s *UserService) ListAll(ctx context.Context) ([]models.UserInfo, error) {
	return s.store.ListAll(ctx, nil)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.UserInfo, error) {
	return s.store.Get(ctx, id)
}

func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.UserInfo, error) {
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", validator.ErrInvalidInput)
	}
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", req.Username, err)
	}
	s.logger.Info("User created", zap.String("username", req.Username), zap.String("role", req.Role.String()))
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.UserInfo, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	user, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return user, nil
}

func (s *UserService) Activate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, "activate")
}

func (s *UserService) Deactivate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, "deactivate")
}

func (s *UserService) setActive(ctx context.Context, id, action string) error {
	if err := s.store.Action(ctx, id, action, nil, nil); err != nil {
		return fmt.Errorf("%s user %s: %w", action, id, err)
	}
	s.logger.Info("User "+action+"d", zap.String("user_info_id", id))
	return nil
}
