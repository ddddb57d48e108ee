package repository

import (
	"study_portal_backend/internal/model"

	"gorm.io/gorm"
)

type ForumRepository struct {
	DB *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{DB: db}
}

func (r *ForumRepository) Create(post *model.ForumPost) error {
	return r.DB.Create(post).Error
}

// List 最新的帖子在前
func (r *ForumRepository) List(limit int) ([]model.ForumPost, error) {
	var posts []model.ForumPost
	query := r.DB.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&posts).Error
	return posts, err
}

func (r *ForumRepository) FindByID(id string) (*model.ForumPost, error) {
	var post model.ForumPost
	err := r.DB.Where("id = ?", id).First(&post).Error
	return &post, err
}
