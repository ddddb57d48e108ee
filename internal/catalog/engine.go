// Package catalog 维护学习资料目录：有序的内存记录集合及其查询、变更规则。
package catalog

import (
	"errors"
	"study_portal_backend/internal/model"
	"sync"
	"time"
)

var (
	ErrNotFound    = errors.New("material not found")
	ErrDuplicateID = errors.New("material id already exists")
)

// Patch 只包含可编辑字段，id、上传者和类型不能通过更新修改
type Patch struct {
	Title       *string
	Description *string
	Tags        *[]string
	UploadedAt  *time.Time
}

type Stats struct {
	Total     int `json:"totalMaterials"`
	Pending   int `json:"pendingApprovals"`
	Approved  int `json:"approved"`
	Notes     int `json:"notes"`
	Downloads int `json:"totalDownloads"`
}

// Engine 持有资料集合，下标 0 为最新记录。
// 所有写操作都经过 Engine，读操作返回副本。
type Engine struct {
	mu      sync.RWMutex
	records []model.Material
	nextID  uint64
	now     func() time.Time
}

func NewEngine() *Engine {
	return &Engine{nextID: 1, now: time.Now}
}

// Load 按给定顺序替换整个集合，用于初始数据
func (e *Engine) Load(records []model.Material) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.records = make([]model.Material, 0, len(records))
	e.nextID = 1
	for _, r := range records {
		e.records = append(e.records, r.Clone())
		if r.ID >= e.nextID {
			e.nextID = r.ID + 1
		}
	}
}

func (e *Engine) Add(m model.Material) (model.Material, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m.ID == 0 {
		m.ID = e.nextID
	} else if e.indexOf(m.ID) >= 0 {
		return model.Material{}, ErrDuplicateID
	}
	if m.ID >= e.nextID {
		e.nextID = m.ID + 1
	}
	if m.UploadedAt.IsZero() {
		m.UploadedAt = e.now()
	}

	m = m.Clone()
	e.records = append([]model.Material{m}, e.records...)
	return m.Clone(), nil
}

func (e *Engine) Update(id uint64, p Patch) (model.Material, error) {
	return e.mutate(id, func(m *model.Material) {
		if p.Title != nil {
			m.Title = *p.Title
		}
		if p.Description != nil {
			m.Description = *p.Description
		}
		if p.Tags != nil {
			m.Tags = append([]string(nil), (*p.Tags)...)
		}
		if p.UploadedAt != nil {
			m.UploadedAt = *p.UploadedAt
		}
	})
}

func (e *Engine) SetApproval(id uint64, approved bool) (model.Material, error) {
	return e.mutate(id, func(m *model.Material) {
		m.IsApproved = approved
	})
}

func (e *Engine) IncrementDownloads(id uint64) (model.Material, error) {
	return e.mutate(id, func(m *model.Material) {
		m.Downloads++
	})
}

// Remove 删除记录并返回被删除的记录，调用方据此清理文件
func (e *Engine) Remove(id uint64) (model.Material, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return model.Material{}, ErrNotFound
	}
	removed := e.records[i]
	e.records = append(e.records[:i:i], e.records[i+1:]...)
	return removed, nil
}

func (e *Engine) Get(id uint64) (model.Material, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	i := e.indexOf(id)
	if i < 0 {
		return model.Material{}, false
	}
	return e.records[i].Clone(), true
}

// All 返回全部记录的副本，最新在前
func (e *Engine) All() []model.Material {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]model.Material, len(e.records))
	for i, r := range e.records {
		out[i] = r.Clone()
	}
	return out
}

func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var s Stats
	for _, r := range e.records {
		s.Total++
		if r.IsApproved {
			s.Approved++
		} else {
			s.Pending++
		}
		if r.Type == model.TypeNotes {
			s.Notes++
		}
		s.Downloads += r.Downloads
	}
	return s
}

func (e *Engine) mutate(id uint64, fn func(*model.Material)) (model.Material, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return model.Material{}, ErrNotFound
	}
	fn(&e.records[i])
	return e.records[i].Clone(), nil
}

func (e *Engine) indexOf(id uint64) int {
	for i := range e.records {
		if e.records[i].ID == id {
			return i
		}
	}
	return -1
}
