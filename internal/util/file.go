package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectUploadType 根据文件内容（而不是扩展名或客户端声明）判断 MIME 类型，
// 返回白名单中的规范类型
func DetectUploadType(reader io.Reader) (string, error) {
	mt, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", err
	}

	for _, allowed := range AllowedUploadTypes {
		if mt.Is(allowed) {
			return allowed, nil
		}
	}

	return mt.String(), fmt.Errorf("%w: %s", ErrInvalidFileType, mt.String())
}

// FormatSizeMB 例如 1.50MB
func FormatSizeMB(size int64) string {
	return fmt.Sprintf("%.2fMB", float64(size)/1024/1024)
}

// TextFileName 文本笔记下载文件名：空格替换为下划线
func TextFileName(title string) string {
	return strings.ReplaceAll(title, " ", "_") + ".txt"
}

func NoteText(title, description string) string {
	return fmt.Sprintf("Title: %s\n\n%s", title, description)
}

// PlaceholderText 初始数据没有真实文件时的占位内容
func PlaceholderText(title string) string {
	return fmt.Sprintf("This is a dummy file for: %s\n\nActual content would be downloaded here.", title)
}
