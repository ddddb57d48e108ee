package catalog

import (
	"study_portal_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanModify(t *testing.T) {
	note := model.Material{ID: 1, Type: model.TypeNotes, UploaderEmail: "student@sppu.com"}
	seeded := model.Material{ID: 2, Type: model.TypePYQ}

	assert.True(t, CanModify(admin, note))
	assert.True(t, CanModify(admin, seeded))
	assert.True(t, CanModify(&Viewer{Email: "Student@SPPU.com", Role: model.RoleUser}, note))
	assert.False(t, CanModify(&Viewer{Email: "other@sppu.com", Role: model.RoleUser}, note))
	assert.False(t, CanModify(student, seeded))
	assert.False(t, CanModify(nil, note))
}

func TestCanViewAdmin(t *testing.T) {
	assert.True(t, CanViewAdmin(admin))
	assert.False(t, CanViewAdmin(student))
	assert.False(t, CanViewAdmin(nil))
}

func TestCanChangeRole(t *testing.T) {
	assert.True(t, CanChangeRole(admin, "student@sppu.com"))
	assert.False(t, CanChangeRole(admin, "ADMIN@sppu.com"))
	assert.False(t, CanChangeRole(student, "other@sppu.com"))
	assert.False(t, CanChangeRole(nil, "student@sppu.com"))
}

func TestValidateNote(t *testing.T) {
	errs := ValidateNote("", "some content")
	assert.Equal(t, NoteErrors{Title: ErrKindRequired}, errs)
	assert.False(t, errs.Empty())

	errs = ValidateNote("   ", "\t\n")
	assert.Equal(t, ErrKindRequired, errs.Title)
	assert.Equal(t, ErrKindRequired, errs.Description)

	assert.True(t, ValidateNote("Title", "Body").Empty())
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"maths", "unit-1", "calculus"}, ParseTags("maths, unit-1 ,calculus"))
	assert.Equal(t, []string{"a"}, ParseTags(" , a,,"))
	assert.Empty(t, ParseTags(""))
}
