package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"study_portal_backend/internal/catalog"
	"study_portal_backend/internal/config"
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/util"
	"study_portal_backend/pkg/logger"
	"study_portal_backend/pkg/monitoring"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadRequest 上传资料的表单字段和文件内容
type UploadRequest struct {
	Title       string
	Subject     string
	Description string
	Branch      model.Branch
	Year        model.Year
	Type        model.MaterialType
	FileName    string
	Size        int64
	File        io.ReadSeeker
}

// NoteRequest 新建或编辑文本笔记，Tags 为逗号分隔的原始输入
type NoteRequest struct {
	Title       string
	Description string
	Tags        string
}

// ListRequest 非笔记视图的查询条件
type ListRequest struct {
	View    catalog.View
	Search  string
	Subject string
}

// NotesPage 笔记页：当前页记录和可选标签
type NotesPage struct {
	catalog.Page
	Tags []string `json:"tags"`
}

// Download 下载内容，调用方负责关闭 Body
type Download struct {
	FileName    string
	ContentType string
	Body        io.ReadCloser
}

type AdminOverview struct {
	Pending  []model.Material `json:"pending"`
	Approved []model.Material `json:"approved"`
	Stats    catalog.Stats    `json:"stats"`
}

type MaterialService struct {
	Catalog *catalog.Engine
	Storage *StorageService
	Cfg     *config.Config
}

func NewMaterialService(engine *catalog.Engine, storage *StorageService, cfg *config.Config) *MaterialService {
	return &MaterialService{
		Catalog: engine,
		Storage: storage,
		Cfg:     cfg,
	}
}

func (s *MaterialService) Get(v *catalog.Viewer, id uint64) (model.Material, error) {
	m, ok := s.Catalog.Get(id)
	if !ok || !catalog.IsVisible(v, m) {
		return model.Material{}, util.ErrMaterialNotFound
	}
	return m, nil
}

func (s *MaterialService) List(v *catalog.Viewer, req ListRequest) []model.Material {
	view := req.View
	if view == "" {
		view = catalog.ViewMaterials
	}
	out := catalog.QueryGeneral(v, view, req.Search, s.Catalog.All())
	return catalog.FilterBySubject(req.Subject, out)
}

// Notes 标签列表基于调用者可见的笔记生成
func (s *MaterialService) Notes(v *catalog.Viewer, q catalog.NotesQuery) NotesPage {
	if q.PageSize <= 0 {
		q.PageSize = s.Cfg.Catalog.NotesPageSize
	}
	if q.Page == 0 {
		q.Page = 1
	}
	all := s.Catalog.All()
	return NotesPage{
		Page: catalog.QueryNotes(v, all, q),
		Tags: catalog.DistinctTags(catalog.VisibleTo(v, all)),
	}
}

func (s *MaterialService) Recent(v *catalog.Viewer) []model.Material {
	return catalog.Recent(catalog.VisibleTo(v, s.Catalog.All()), s.Cfg.Catalog.RecentCount)
}

func (s *MaterialService) Subjects(v *catalog.Viewer) []string {
	return catalog.DistinctSubjects(catalog.VisibleTo(v, s.Catalog.All()))
}

// Upload 资料以未审核状态进入目录，等待管理员审核
func (s *MaterialService) Upload(ctx context.Context, v *catalog.Viewer, req UploadRequest) (model.Material, error) {
	if v == nil {
		return model.Material{}, util.ErrPermissionDenied
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Subject) == "" {
		return model.Material{}, fmt.Errorf("%w: title and subject are required", util.ErrInvalidMaterial)
	}
	if !req.Branch.Valid() || !req.Year.Valid() || !req.Type.Valid() {
		return model.Material{}, fmt.Errorf("%w: unknown branch, year or type", util.ErrInvalidMaterial)
	}
	if limit := s.Cfg.Server.MaxUploadMB * 1024 * 1024; limit > 0 && req.Size > limit {
		return model.Material{}, util.ErrFileTooLarge
	}

	contentType, err := util.DetectUploadType(req.File)
	if err != nil {
		return model.Material{}, err
	}
	// 重置读取指针
	if _, err := req.File.Seek(0, io.SeekStart); err != nil {
		return model.Material{}, err
	}

	key := "materials/" + uuid.NewString() + strings.ToLower(filepath.Ext(req.FileName))
	url, err := s.Storage.Upload(ctx, key, req.File, req.Size, contentType)
	if err != nil {
		return model.Material{}, fmt.Errorf("store upload: %w", err)
	}

	m, err := s.Catalog.Add(model.Material{
		Branch:        req.Branch,
		Year:          req.Year,
		Subject:       strings.TrimSpace(req.Subject),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Type:          req.Type,
		SizeLabel:     util.FormatSizeMB(req.Size),
		FileName:      req.FileName,
		FileKey:       key,
		FileURL:       url,
		ContentType:   contentType,
		IsApproved:    false,
		UploaderEmail: v.Email,
	})
	if err != nil {
		return model.Material{}, err
	}

	logger.Log.Info("Material uploaded",
		zap.Uint64("id", m.ID),
		zap.String("uploader", v.Email),
		zap.String("contentType", contentType))
	s.refreshGauges()
	return m, nil
}

// CreateNote 通过笔记入口创建的记录直接审核通过。
// 校验失败时返回 catalog.NoteErrors。
func (s *MaterialService) CreateNote(v *catalog.Viewer, req NoteRequest) (model.Material, error) {
	if v == nil {
		return model.Material{}, util.ErrPermissionDenied
	}
	if errs := catalog.ValidateNote(req.Title, req.Description); !errs.Empty() {
		return model.Material{}, errs
	}

	m, err := s.Catalog.Add(model.Material{
		Branch:        model.BranchComputer,
		Year:          model.FirstYear,
		Subject:       util.NoteSubject,
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Type:          model.TypeNotes,
		SizeLabel:     util.NoteSizeLabel,
		IsApproved:    true,
		UploaderEmail: v.Email,
		Tags:          catalog.ParseTags(req.Tags),
	})
	if err != nil {
		return model.Material{}, err
	}
	s.refreshGauges()
	return m, nil
}

// UpdateNote 编辑会刷新上传时间
func (s *MaterialService) UpdateNote(v *catalog.Viewer, id uint64, req NoteRequest) (model.Material, error) {
	if errs := catalog.ValidateNote(req.Title, req.Description); !errs.Empty() {
		return model.Material{}, errs
	}

	existing, ok := s.Catalog.Get(id)
	if !ok || existing.Type != model.TypeNotes {
		logger.Log.Warn("Note not found for update", zap.Uint64("id", id))
		return model.Material{}, util.ErrMaterialNotFound
	}
	if !catalog.CanModify(v, existing) {
		return model.Material{}, util.ErrPermissionDenied
	}

	title := strings.TrimSpace(req.Title)
	desc := strings.TrimSpace(req.Description)
	tags := catalog.ParseTags(req.Tags)
	now := time.Now()
	m, err := s.Catalog.Update(id, catalog.Patch{
		Title:       &title,
		Description: &desc,
		Tags:        &tags,
		UploadedAt:  &now,
	})
	if errors.Is(err, catalog.ErrNotFound) {
		return model.Material{}, util.ErrMaterialNotFound
	}
	return m, err
}

// Delete 上传者本人或管理员可删除；文件清理失败只记录警告
func (s *MaterialService) Delete(ctx context.Context, v *catalog.Viewer, id uint64) error {
	existing, ok := s.Catalog.Get(id)
	if !ok {
		logger.Log.Warn("Material not found for delete", zap.Uint64("id", id))
		return util.ErrMaterialNotFound
	}
	if !catalog.CanModify(v, existing) {
		return util.ErrPermissionDenied
	}

	removed, err := s.Catalog.Remove(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return util.ErrMaterialNotFound
		}
		return err
	}

	if removed.HasBlob() {
		if err := s.Storage.Delete(ctx, removed.FileKey); err != nil {
			logger.Log.Warn("Failed to delete material file",
				zap.Uint64("id", id),
				zap.String("key", removed.FileKey),
				zap.Error(err))
		}
	}

	logger.Log.Info("Material deleted", zap.Uint64("id", id), zap.String("by", v.Email))
	s.refreshGauges()
	return nil
}

func (s *MaterialService) SetApproval(v *catalog.Viewer, id uint64, approved bool) (model.Material, error) {
	if !catalog.CanViewAdmin(v) {
		return model.Material{}, util.ErrPermissionDenied
	}
	m, err := s.Catalog.SetApproval(id, approved)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			logger.Log.Warn("Material not found for approval", zap.Uint64("id", id))
			return model.Material{}, util.ErrMaterialNotFound
		}
		return model.Material{}, err
	}
	s.refreshGauges()
	return m, nil
}

// Download 计数后返回文件内容：上传的文件、文本笔记或占位文本
func (s *MaterialService) Download(ctx context.Context, v *catalog.Viewer, id uint64) (*Download, error) {
	m, err := s.Get(v, id)
	if err != nil {
		return nil, err
	}

	if m.HasBlob() {
		body, err := s.Storage.Open(ctx, m.FileKey)
		if err != nil {
			return nil, fmt.Errorf("open material file: %w", err)
		}
		s.countDownload(id)
		return &Download{FileName: m.FileName, ContentType: m.ContentType, Body: body}, nil
	}

	s.countDownload(id)
	if m.Type == model.TypeNotes {
		return textDownload(util.TextFileName(m.Title), util.NoteText(m.Title, m.Description)), nil
	}
	return textDownload(util.TextFileName(m.Title), util.PlaceholderText(m.Title)), nil
}

func (s *MaterialService) countDownload(id uint64) {
	if _, err := s.Catalog.IncrementDownloads(id); err != nil {
		logger.Log.Warn("Failed to count download", zap.Uint64("id", id), zap.Error(err))
		return
	}
	monitoring.MaterialDownloads.Inc()
}

func textDownload(name, content string) *Download {
	return &Download{
		FileName:    name,
		ContentType: util.MimeTXT + "; charset=utf-8",
		Body:        io.NopCloser(bytes.NewBufferString(content)),
	}
}

// AdminOverview 管理后台：按关键字搜索后分为待审核和已审核两组
func (s *MaterialService) AdminOverview(v *catalog.Viewer, search string) (*AdminOverview, error) {
	if !catalog.CanViewAdmin(v) {
		return nil, util.ErrPermissionDenied
	}
	pending, approved := catalog.PartitionByApproval(catalog.AdminSearch(search, s.Catalog.All()))
	return &AdminOverview{
		Pending:  pending,
		Approved: approved,
		Stats:    s.Catalog.Stats(),
	}, nil
}

func (s *MaterialService) refreshGauges() {
	st := s.Catalog.Stats()
	monitoring.SetCatalogCounts(st.Pending, st.Approved)
}
