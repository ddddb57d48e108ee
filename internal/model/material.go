package model

import "time"

type Branch string

const (
	BranchComputer   Branch = "Computer"
	BranchIT         Branch = "IT"
	BranchMechanical Branch = "Mechanical"
	BranchCivil      Branch = "Civil"
	BranchElectrical Branch = "Electrical"
	BranchENTC       Branch = "ENTC"
)

var Branches = []Branch{BranchComputer, BranchIT, BranchMechanical, BranchCivil, BranchElectrical, BranchENTC}

func (b Branch) Valid() bool {
	for _, v := range Branches {
		if v == b {
			return true
		}
	}
	return false
}

type Year string

const (
	FirstYear  Year = "First Year"
	SecondYear Year = "Second Year"
	ThirdYear  Year = "Third Year"
	FourthYear Year = "Fourth Year"
)

var Years = []Year{FirstYear, SecondYear, ThirdYear, FourthYear}

func (y Year) Valid() bool {
	for _, v := range Years {
		if v == y {
			return true
		}
	}
	return false
}

// MaterialType 决定资料出现在哪些视图中
type MaterialType string

const (
	TypeNotes      MaterialType = "Notes"
	TypePYQ        MaterialType = "PYQs"
	TypeAssignment MaterialType = "Assignments"
	TypeModelPaper MaterialType = "Model Papers"
)

var MaterialTypes = []MaterialType{TypeNotes, TypePYQ, TypeAssignment, TypeModelPaper}

func (t MaterialType) Valid() bool {
	for _, v := range MaterialTypes {
		if v == t {
			return true
		}
	}
	return false
}

// swagger:model Material
type Material struct {
	ID            uint64       `json:"id"`
	Branch        Branch       `json:"branch"`
	Year          Year         `json:"year"`
	Subject       string       `json:"subject"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Type          MaterialType `json:"type"`
	SizeLabel     string       `json:"size"`
	UploadedAt    time.Time    `json:"uploaded"`
	Downloads     int          `json:"downloads"`
	FileName      string       `json:"fileName,omitempty"`
	FileKey       string       `json:"-"` // 存储层对象名
	FileURL       string       `json:"fileUrl,omitempty"`
	ContentType   string       `json:"contentType,omitempty"`
	IsApproved    bool         `json:"isApproved"`
	UploaderEmail string       `json:"uploaderEmail,omitempty"`
	Tags          []string     `json:"tags,omitempty"`
}

// Clone 返回不与原记录共享 Tags 的副本
func (m Material) Clone() Material {
	if m.Tags != nil {
		tags := make([]string, len(m.Tags))
		copy(tags, m.Tags)
		m.Tags = tags
	}
	return m
}

func (m Material) HasBlob() bool {
	return m.FileKey != ""
}

func (m Material) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
