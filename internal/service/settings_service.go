package service

import (
	"strconv"
	"strings"
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/repository"
)

type SettingsService struct {
	Repo *repository.SettingRepository
}

func NewSettingsService(repo *repository.SettingRepository) *SettingsService {
	return &SettingsService{Repo: repo}
}

func (s *SettingsService) Get() (*model.SiteSettings, error) {
	values, err := s.Repo.GetAll()
	if err != nil {
		return nil, err
	}
	return &model.SiteSettings{
		Announcement: model.Announcement{
			Message: values[model.SettingAnnouncementMessage],
			Active:  parseBool(values[model.SettingAnnouncementActive], false),
		},
		// 缺省开放注册
		RegistrationsOpen: parseBool(values[model.SettingRegistrationsOpen], true),
	}, nil
}

// GetAnnouncement 公开接口：未激活或内容为空时返回 nil
func (s *SettingsService) GetAnnouncement() (*model.Announcement, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	a := settings.Announcement
	if !a.Active || strings.TrimSpace(a.Message) == "" {
		return nil, nil
	}
	return &a, nil
}

func (s *SettingsService) Update(settings *model.SiteSettings) error {
	return s.Repo.SetMany(map[string]string{
		model.SettingAnnouncementMessage: strings.TrimSpace(settings.Announcement.Message),
		model.SettingAnnouncementActive:  strconv.FormatBool(settings.Announcement.Active),
		model.SettingRegistrationsOpen:   strconv.FormatBool(settings.RegistrationsOpen),
	})
}

func (s *SettingsService) RegistrationsOpen() (bool, error) {
	settings, err := s.Get()
	if err != nil {
		return false, err
	}
	return settings.RegistrationsOpen, nil
}

func parseBool(v string, fallback bool) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
