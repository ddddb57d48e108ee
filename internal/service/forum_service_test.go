package service

import (
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/repository"
	"study_portal_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForumService(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	forum := NewForumService(repository.NewForumRepository(db), userRepo)

	author := &model.User{Email: "student@sppu.com", Name: "Riya", Password: "x", Role: model.RoleUser, Avatar: model.AvatarFor("student@sppu.com")}
	require.NoError(t, userRepo.Create(author))
	claims := &util.Claims{UserID: author.ID, Email: author.Email, Role: author.Role}

	_, err := forum.Create(nil, CreatePostRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	_, err = forum.Create(claims, CreatePostRequest{Title: " ", Content: "c"})
	assert.ErrorIs(t, err, util.ErrInvalidPost)

	named, err := forum.Create(claims, CreatePostRequest{Title: "M1 doubts", Content: "Unit 3 integrals"})
	require.NoError(t, err)
	assert.Equal(t, "Riya", named.Author.Name)
	assert.Zero(t, named.Replies)
	assert.NotEmpty(t, named.ID)

	anon, err := forum.Create(claims, CreatePostRequest{Title: "Anon", Content: "secret", IsAnonymous: true})
	require.NoError(t, err)
	assert.Equal(t, model.AnonymousAuthor, anon.Author.Name)

	posts, err := forum.List()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	titles := []string{posts[0].Title, posts[1].Title}
	assert.ElementsMatch(t, []string{"M1 doubts", "Anon"}, titles)
}
