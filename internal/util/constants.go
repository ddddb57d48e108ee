package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	ChatProviderGemini = "gemini"
	ChatProviderOpenAI = "openai"
)

// 上传文件允许的 MIME 类型
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimeTXT  = "text/plain"
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeGIF  = "image/gif"
)

var AllowedUploadTypes = []string{MimePDF, MimeDOCX, MimePPTX, MimeTXT, MimeJPEG, MimePNG, MimeGIF}

const (
	NoteSubject   = "General Notes"
	NoteSizeLabel = "N/A"
	NotesPageSize = 6
	RecentCount   = 4
)
