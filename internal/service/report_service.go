package service

import (
	"bytes"
	"strings"
	"study_portal_backend/internal/catalog"
	"study_portal_backend/internal/util"

	"github.com/xuri/excelize/v2"
)

const catalogSheet = "Catalog"

var catalogHeader = []interface{}{
	"ID", "Title", "Subject", "Branch", "Year", "Type", "Size",
	"Uploaded", "Downloads", "Approved", "Uploader", "Tags",
}

type ReportService struct {
	Catalog *catalog.Engine
}

func NewReportService(engine *catalog.Engine) *ReportService {
	return &ReportService{Catalog: engine}
}

// ExportCatalog 导出全部资料（含未审核）为 xlsx，仅管理员可用
func (s *ReportService) ExportCatalog(v *catalog.Viewer) (*bytes.Buffer, error) {
	if !catalog.CanViewAdmin(v) {
		return nil, util.ErrPermissionDenied
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", catalogSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(catalogSheet, "A1", &catalogHeader); err != nil {
		return nil, err
	}

	for i, m := range s.Catalog.All() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			m.ID,
			m.Title,
			m.Subject,
			string(m.Branch),
			string(m.Year),
			string(m.Type),
			m.SizeLabel,
			m.UploadedAt.Format(util.TimeFormat),
			m.Downloads,
			m.IsApproved,
			m.UploaderEmail,
			strings.Join(m.Tags, ", "),
		}
		if err := f.SetSheetRow(catalogSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}
