package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRegistrationClosed = errors.New("registrations are currently closed")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrSelfRoleChange     = errors.New("admins cannot change their own role")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidTheme       = errors.New("theme must be light or dark")
	ErrMaterialNotFound   = errors.New("material not found")
	ErrInvalidFileType    = errors.New("invalid file type, allowed: PDF, DOCX, PPTX, TXT, JPEG, PNG, GIF")
	ErrFileTooLarge       = errors.New("file is too large")
	ErrInvalidMaterial    = errors.New("invalid material metadata")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidTask        = errors.New("title and a due date (YYYY-MM-DD) are required")
	ErrInvalidPost        = errors.New("title and content are required")
	ErrEmptyPrompt        = errors.New("prompt is required")
)
