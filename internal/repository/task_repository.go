package repository

import (
	"study_portal_backend/internal/model"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(task *model.StudyTask) error {
	return r.DB.Create(task).Error
}

// FindByUser 按截止日期排序，未完成的在前
func (r *TaskRepository) FindByUser(userID uint) ([]model.StudyTask, error) {
	var tasks []model.StudyTask
	err := r.DB.Where("user_id = ?", userID).
		Order("is_completed ASC").
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) FindByIDAndUser(id, userID uint) (*model.StudyTask, error) {
	var task model.StudyTask
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	return &task, err
}

func (r *TaskRepository) SetCompleted(id uint, completed bool) error {
	return r.DB.Model(&model.StudyTask{}).Where("id = ?", id).Update("is_completed", completed).Error
}

type TaskCounts struct {
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
}

func (r *TaskRepository) CountByUser(userID uint) (TaskCounts, error) {
	var counts TaskCounts
	err := r.DB.Model(&model.StudyTask{}).
		Where("user_id = ? AND is_completed = ?", userID, false).
		Count(&counts.Pending).Error
	if err != nil {
		return counts, err
	}
	err = r.DB.Model(&model.StudyTask{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&counts.Completed).Error
	return counts, err
}
