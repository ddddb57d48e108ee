package service

import (
	"errors"
	"study_portal_backend/internal/catalog"
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/repository"
	"study_portal_backend/internal/util"
	"study_portal_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) List() ([]model.User, error) {
	return s.UserRepo.List()
}

func (s *UserService) Count() (int64, error) {
	return s.UserRepo.Count()
}

// ChangeRole 管理员修改其他用户角色，不能修改自己
func (s *UserService) ChangeRole(actor *catalog.Viewer, targetEmail string, role model.UserRole) (*model.User, error) {
	if !role.Valid() {
		return nil, util.ErrInvalidRole
	}
	if !catalog.CanViewAdmin(actor) {
		return nil, util.ErrPermissionDenied
	}
	if !catalog.CanChangeRole(actor, targetEmail) {
		return nil, util.ErrSelfRoleChange
	}

	user, err := s.UserRepo.FindByEmail(targetEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.UserRepo.UpdateRole(user.ID, role); err != nil {
		return nil, err
	}
	logger.Log.Info("User role changed",
		zap.String("actor", actor.Email),
		zap.String("target", user.Email),
		zap.String("role", string(role)))

	user.Role = role
	return user, nil
}

func (s *UserService) UpdateTheme(userID uint, theme model.Theme) error {
	if theme != model.ThemeLight && theme != model.ThemeDark {
		return util.ErrInvalidTheme
	}
	return s.UserRepo.UpdateTheme(userID, theme)
}
