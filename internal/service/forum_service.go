package service

import (
	"strings"
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/repository"
	"study_portal_backend/internal/util"
)

const forumListLimit = 100

// PostView 帖子及展示用作者，匿名帖子隐藏真实作者
type PostView struct {
	model.ForumPost
	Author model.PostAuthor `json:"author"`
}

type CreatePostRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	IsAnonymous bool   `json:"isAnonymous"`
}

type ForumService struct {
	ForumRepo *repository.ForumRepository
	UserRepo  *repository.UserRepository
}

func NewForumService(forumRepo *repository.ForumRepository, userRepo *repository.UserRepository) *ForumService {
	return &ForumService{ForumRepo: forumRepo, UserRepo: userRepo}
}

func (s *ForumService) List() ([]PostView, error) {
	posts, err := s.ForumRepo.List(forumListLimit)
	if err != nil {
		return nil, err
	}
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, PostView{ForumPost: posts[i], Author: posts[i].DisplayAuthor()})
	}
	return views, nil
}

func (s *ForumService) Create(claims *util.Claims, req CreatePostRequest) (*PostView, error) {
	if claims == nil {
		return nil, util.ErrPermissionDenied
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, util.ErrInvalidPost
	}

	author, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	post := &model.ForumPost{
		Title:        title,
		Content:      content,
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		IsAnonymous:  req.IsAnonymous,
	}
	if err := s.ForumRepo.Create(post); err != nil {
		return nil, err
	}
	return &PostView{ForumPost: *post, Author: post.DisplayAuthor()}, nil
}
