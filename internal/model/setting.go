package model

const (
	SettingAnnouncementMessage = "announcement_message"
	SettingAnnouncementActive  = "announcement_active"
	SettingRegistrationsOpen   = "registrations_open"
)

// SiteSetting 全站配置项，键值形式存储
type SiteSetting struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"type:text"`
}

func (SiteSetting) TableName() string {
	return "site_settings"
}

// swagger:model Announcement
type Announcement struct {
	Message string `json:"message"`
	Active  bool   `json:"active"`
}

// swagger:model SiteSettings
type SiteSettings struct {
	Announcement      Announcement `json:"announcement"`
	RegistrationsOpen bool         `json:"registrationsOpen"`
}
