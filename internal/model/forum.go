package model

// swagger:model ForumPost
type ForumPost struct {
	UUIDBase
	Title        string `gorm:"size:255;not null" json:"title"`
	Content      string `gorm:"type:text;not null" json:"content"`
	AuthorID     uint   `gorm:"index" json:"-"`
	AuthorName   string `gorm:"size:100" json:"-"`
	AuthorAvatar string `gorm:"size:255" json:"-"`
	Replies      int    `gorm:"default:0" json:"replies"`
	IsAnonymous  bool   `gorm:"default:false" json:"isAnonymous"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}

// PostAuthor 展示用作者信息，匿名帖子不暴露真实用户
type PostAuthor struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

const AnonymousAuthor = "Anonymous"

func (p *ForumPost) DisplayAuthor() PostAuthor {
	if p.IsAnonymous {
		return PostAuthor{Name: AnonymousAuthor, Avatar: AvatarFor(AnonymousAuthor)}
	}
	return PostAuthor{Name: p.AuthorName, Avatar: p.AuthorAvatar}
}
