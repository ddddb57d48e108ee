package service

import (
	"errors"
	"strings"
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/repository"
	"study_portal_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title   string `json:"title" binding:"required"`
	Subject string `json:"subject"`
	// DueDate 格式 2006-01-02
	DueDate string `json:"dueDate" binding:"required"`
}

// PlannerService 学习计划：每个用户只能操作自己的任务
type PlannerService struct {
	TaskRepo *repository.TaskRepository
}

func NewPlannerService(taskRepo *repository.TaskRepository) *PlannerService {
	return &PlannerService{TaskRepo: taskRepo}
}

func (s *PlannerService) List(userID uint) ([]model.StudyTask, error) {
	return s.TaskRepo.FindByUser(userID)
}

func (s *PlannerService) Create(userID uint, req CreateTaskRequest) (*model.StudyTask, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, util.ErrInvalidTask
	}
	due, err := time.Parse(util.DateFormat, strings.TrimSpace(req.DueDate))
	if err != nil {
		return nil, util.ErrInvalidTask
	}

	task := &model.StudyTask{
		UserID:  userID,
		Title:   title,
		Subject: strings.TrimSpace(req.Subject),
		DueDate: due,
	}
	if err := s.TaskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *PlannerService) Toggle(userID, taskID uint) (*model.StudyTask, error) {
	task, err := s.TaskRepo.FindByIDAndUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTaskNotFound
		}
		return nil, err
	}

	task.IsCompleted = !task.IsCompleted
	if err := s.TaskRepo.SetCompleted(task.ID, task.IsCompleted); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *PlannerService) Summary(userID uint) (repository.TaskCounts, error) {
	return s.TaskRepo.CountByUser(userID)
}
