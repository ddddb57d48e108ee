package model

import "time"

// StudyTask 学习计划中的单个任务
// swagger:model StudyTask
type StudyTask struct {
	BaseModel
	UserID      uint      `gorm:"index;not null" json:"-"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Subject     string    `gorm:"size:100" json:"subject"`
	DueDate     time.Time `json:"dueDate"`
	IsCompleted bool      `gorm:"default:false" json:"isCompleted"`
}

func (StudyTask) TableName() string {
	return "study_tasks"
}
