package catalog

import (
	"strings"
	"study_portal_backend/internal/model"
)

const (
	// AllTags 标签筛选的哨兵值，表示不过滤
	AllTags = "All Tags"
	// AllSubjects 下载页科目筛选的哨兵值
	AllSubjects     = "All"
	DefaultPageSize = 6
)

type View string

const (
	ViewHome         View = "home"
	ViewMaterials    View = "materials"
	ViewNotes        View = "notes"
	ViewQuestionBank View = "questionBank"
	ViewDownloads    View = "downloads"
	ViewAddEditNote  View = "addEditNote"
)

// admits 返回视图是否收录该类型，未知视图不收录任何记录
func (v View) admits(t model.MaterialType) bool {
	switch v {
	case ViewNotes:
		return t == model.TypeNotes
	case ViewMaterials:
		return t != model.TypeNotes
	case ViewQuestionBank:
		return t == model.TypePYQ
	case ViewHome, ViewDownloads, ViewAddEditNote:
		return true
	default:
		return false
	}
}

type Page struct {
	Items      []model.Material `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

func filter(records []model.Material, keep func(model.Material) bool) []model.Material {
	out := make([]model.Material, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func IsVisible(v *Viewer, m model.Material) bool {
	return v.IsAdmin() || m.IsApproved
}

// VisibleTo 管理员可见全部记录，其他人（包括上传者本人）只能看到已审核记录
func VisibleTo(v *Viewer, records []model.Material) []model.Material {
	if v.IsAdmin() {
		return records
	}
	return filter(records, func(m model.Material) bool { return m.IsApproved })
}

func FilterByView(view View, records []model.Material) []model.Material {
	return filter(records, func(m model.Material) bool { return view.admits(m.Type) })
}

// SearchText 对标题、描述、科目做大小写不敏感的子串匹配，空关键字不过滤
func SearchText(term string, records []model.Material) []model.Material {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	return filter(records, func(m model.Material) bool {
		return strings.Contains(strings.ToLower(m.Title), needle) ||
			strings.Contains(strings.ToLower(m.Description), needle) ||
			strings.Contains(strings.ToLower(m.Subject), needle)
	})
}

// FilterByTag 标签精确匹配（区分大小写）；空值或 AllTags 原样返回
func FilterByTag(tag string, records []model.Material) []model.Material {
	if tag == "" || tag == AllTags {
		return records
	}
	return filter(records, func(m model.Material) bool { return m.HasTag(tag) })
}

// DistinctTags 以 AllTags 开头，其余标签按首次出现顺序排列
func DistinctTags(records []model.Material) []string {
	tags := []string{AllTags}
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Type != model.TypeNotes {
			continue
		}
		for _, t := range r.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// Paginate 页码从 1 开始，不做截断：越界页返回空切片。
// TotalPages 至少为 1，空集合也能表示为第 1/1 页。
func Paginate(records []model.Material, pageSize, page int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(records)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	p := Page{
		Items:      []model.Material{},
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
	// 先比较页码再相乘，超大页码或页大小不会溢出
	if page < 1 || page > totalPages {
		return p
	}
	start := (page - 1) * pageSize
	if start >= total {
		return p
	}
	p.Items = records[start : start+min(pageSize, total-start)]
	return p
}

type NotesQuery struct {
	Tag      string
	Search   string
	Page     int
	PageSize int
}

// QueryNotes 笔记视图：可见性 → 类型 → 标签 → 搜索 → 分页
func QueryNotes(v *Viewer, records []model.Material, q NotesQuery) Page {
	notes := FilterByView(ViewNotes, VisibleTo(v, records))
	notes = FilterByTag(q.Tag, notes)
	notes = SearchText(q.Search, notes)
	return Paginate(notes, q.PageSize, q.Page)
}

// QueryGeneral 其他视图：可见性 → 类型 → 搜索，不分页
func QueryGeneral(v *Viewer, view View, term string, records []model.Material) []model.Material {
	out := FilterByView(view, VisibleTo(v, records))
	return SearchText(term, out)
}

func FilterBySubject(subject string, records []model.Material) []model.Material {
	if subject == "" || subject == AllSubjects {
		return records
	}
	return filter(records, func(m model.Material) bool { return m.Subject == subject })
}

func DistinctSubjects(records []model.Material) []string {
	subjects := []string{AllSubjects}
	seen := make(map[string]struct{})
	for _, r := range records {
		if _, ok := seen[r.Subject]; ok {
			continue
		}
		seen[r.Subject] = struct{}{}
		subjects = append(subjects, r.Subject)
	}
	return subjects
}

// AdminSearch 管理后台搜索：标题、科目、上传者邮箱
func AdminSearch(term string, records []model.Material) []model.Material {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	return filter(records, func(m model.Material) bool {
		return strings.Contains(strings.ToLower(m.Title), needle) ||
			strings.Contains(strings.ToLower(m.Subject), needle) ||
			strings.Contains(strings.ToLower(m.UploaderEmail), needle)
	})
}

func PartitionByApproval(records []model.Material) (pending, approved []model.Material) {
	pending = []model.Material{}
	approved = []model.Material{}
	for _, r := range records {
		if r.IsApproved {
			approved = append(approved, r)
		} else {
			pending = append(pending, r)
		}
	}
	return pending, approved
}

// Recent 首页“最近上传”：前 n 条已审核记录
func Recent(records []model.Material, n int) []model.Material {
	out := make([]model.Material, 0, n)
	for _, r := range records {
		if len(out) >= n {
			break
		}
		if r.IsApproved {
			out = append(out, r)
		}
	}
	return out
}
