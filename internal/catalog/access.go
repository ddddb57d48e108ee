package catalog

import (
	"strings"
	"study_portal_backend/internal/model"
)

// Viewer 发起查询或操作的用户，nil 表示游客
type Viewer struct {
	Email string
	Role  model.UserRole
}

func (v *Viewer) IsAdmin() bool {
	return v != nil && v.Role == model.RoleAdmin
}

func (v *Viewer) owns(m model.Material) bool {
	return v != nil && m.UploaderEmail != "" && strings.EqualFold(v.Email, m.UploaderEmail)
}

// CanModify 编辑、删除资料：管理员或上传者本人
func CanModify(v *Viewer, m model.Material) bool {
	return v.IsAdmin() || v.owns(m)
}

func CanViewAdmin(v *Viewer) bool {
	return v.IsAdmin()
}

// CanChangeRole 仅管理员可修改角色，且不能修改自己的角色
func CanChangeRole(actor *Viewer, targetEmail string) bool {
	if !actor.IsAdmin() {
		return false
	}
	return !strings.EqualFold(actor.Email, strings.TrimSpace(targetEmail))
}
