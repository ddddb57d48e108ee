package repository

import (
	"study_portal_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

// GetAll 返回 key -> value
func (r *SettingRepository) GetAll() (map[string]string, error) {
	var rows []model.SiteSetting
	if err := r.DB.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// SetMany 在一个事务内写入多个配置项，不存在则插入
func (r *SettingRepository) SetMany(values map[string]string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for k, v := range values {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&model.SiteSetting{Key: k, Value: v}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
