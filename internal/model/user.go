package model

import "strings"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// swagger:model User
type User struct {
	BaseModel
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name     string   `gorm:"size:100;not null" json:"name"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'user'" json:"role"`
	Avatar   string   `gorm:"size:255" json:"avatar"`
	Theme    Theme    `gorm:"size:10;default:'light'" json:"theme"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// NormalizeEmail 邮箱比较统一忽略大小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func AvatarFor(email string) string {
	return "https://api.dicebear.com/8.x/initials/svg?seed=" + email
}
