package utils

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
	"titanium/config"

	"github.com/google/uuid"
)

// SaveUploadedFile stores an upload under a date-partitioned path keyed by
// entity type, e.g. uploads/course/2026/08/30/<name>, and returns the
// relative path.
func SaveUploadedFile(file *multipart.FileHeader, entityType string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(config.AppConfig.UploadDir, entityType, time.Now().Format("2006/01/02"))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// GetFileURL maps a stored file path to its served location. Paths outside
// the upload directory have no served URL and map to the empty string.
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	rel, err := filepath.Rel(config.AppConfig.UploadDir, filePath)
	if err != nil {
		log.Printf("File path %s is not under the upload directory: %v", filePath, err)
		return ""
	}
	return "/uploads/" + filepath.ToSlash(rel)
}
