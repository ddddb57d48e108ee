package service

import (
	"errors"
	"fmt"
	"strings"
	"study_portal_backend/internal/config"
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/repository"
	"study_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultStudentName = "New Student"

type AuthService struct {
	UserRepo *repository.UserRepository
	Settings *SettingsService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, settings *SettingsService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Settings: settings,
		Cfg:      cfg,
	}
}

// Register 新用户默认为普通用户；注册关闭时返回 ErrRegistrationClosed
func (s *AuthService) Register(email, password, name string) (*model.User, error) {
	open, err := s.Settings.RegistrationsOpen()
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, util.ErrRegistrationClosed
	}

	email = model.NormalizeEmail(email)
	_, err = s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultStudentName
	}
	user := &model.User{
		Email:    email,
		Name:     name,
		Password: string(hashedPassword),
		Role:     model.RoleUser,
		Avatar:   model.AvatarFor(email),
		Theme:    model.ThemeLight,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login 校验密码并签发会话令牌
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
