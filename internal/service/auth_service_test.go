package service

import (
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	auth, _ := newAuthService(t)

	user, err := auth.Register(" New@SPPU.com ", "secret123", "")
	require.NoError(t, err)
	assert.Equal(t, "new@sppu.com", user.Email)
	assert.Equal(t, "New Student", user.Name)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, model.AvatarFor("new@sppu.com"), user.Avatar)
	assert.NotEqual(t, "secret123", user.Password)

	_, err = auth.Register("new@sppu.com", "other", "Dup")
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	token, logged, err := auth.Login("NEW@sppu.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := util.ParseJWT(token, auth.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, "new@sppu.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)

	_, _, err = auth.Login("new@sppu.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, _, err = auth.Login("ghost@sppu.com", "secret123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestAuthService_RegistrationClosed(t *testing.T) {
	auth, settings := newAuthService(t)

	require.NoError(t, settings.Update(&model.SiteSettings{RegistrationsOpen: false}))
	_, err := auth.Register("late@sppu.com", "pw", "Late")
	assert.ErrorIs(t, err, util.ErrRegistrationClosed)

	require.NoError(t, settings.Update(&model.SiteSettings{RegistrationsOpen: true}))
	_, err = auth.Register("late@sppu.com", "pw", "Late")
	assert.NoError(t, err)
}

func TestSettingsService_Announcement(t *testing.T) {
	_, settings := newAuthService(t)

	a, err := settings.GetAnnouncement()
	require.NoError(t, err)
	assert.Nil(t, a)

	require.NoError(t, settings.Update(&model.SiteSettings{
		Announcement:      model.Announcement{Message: "  Exams start Monday ", Active: true},
		RegistrationsOpen: true,
	}))
	a, err = settings.GetAnnouncement()
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "Exams start Monday", a.Message)

	require.NoError(t, settings.Update(&model.SiteSettings{
		Announcement:      model.Announcement{Message: "Hidden", Active: false},
		RegistrationsOpen: true,
	}))
	a, err = settings.GetAnnouncement()
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestUserService_ChangeRole(t *testing.T) {
	auth, _ := newAuthService(t)
	users := NewUserService(auth.UserRepo)

	_, err := auth.Register("student@sppu.com", "pw", "Student")
	require.NoError(t, err)
	_, err = auth.Register("admin@sppu.com", "pw", "Admin")
	require.NoError(t, err)

	_, err = users.ChangeRole(studentViewer, "admin@sppu.com", model.RoleUser)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = users.ChangeRole(adminViewer, "ADMIN@sppu.com", model.RoleUser)
	assert.ErrorIs(t, err, util.ErrSelfRoleChange)

	_, err = users.ChangeRole(adminViewer, "student@sppu.com", model.UserRole("root"))
	assert.ErrorIs(t, err, util.ErrInvalidRole)

	_, err = users.ChangeRole(adminViewer, "ghost@sppu.com", model.RoleAdmin)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	promoted, err := users.ChangeRole(adminViewer, "student@sppu.com", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, promoted.Role)

	stored, err := auth.UserRepo.FindByEmail("student@sppu.com")
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin())

	assert.ErrorIs(t, users.UpdateTheme(stored.ID, model.Theme("blue")), util.ErrInvalidTheme)
	assert.NoError(t, users.UpdateTheme(stored.ID, model.ThemeDark))
}
