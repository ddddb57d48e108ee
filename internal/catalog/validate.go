package catalog

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const ErrKindRequired = "required"

var validate = validator.New()

// NoteErrors 按字段记录校验失败原因，空字段表示通过
type NoteErrors struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

func (e NoteErrors) Empty() bool {
	return e.Title == "" && e.Description == ""
}

func (e NoteErrors) Error() string {
	var fields []string
	if e.Title != "" {
		fields = append(fields, "title "+e.Title)
	}
	if e.Description != "" {
		fields = append(fields, "description "+e.Description)
	}
	return "invalid note: " + strings.Join(fields, ", ")
}

// ValidateNote 标题和描述去除首尾空白后都不能为空
func ValidateNote(title, description string) NoteErrors {
	var errs NoteErrors
	if err := validate.Var(strings.TrimSpace(title), "required"); err != nil {
		errs.Title = ErrKindRequired
	}
	if err := validate.Var(strings.TrimSpace(description), "required"); err != nil {
		errs.Description = ErrKindRequired
	}
	return errs
}

// ParseTags 逗号分隔的标签：去空白，丢弃空项
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
