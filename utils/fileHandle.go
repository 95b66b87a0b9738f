package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveUploadedFile stores an uploaded file under destDir with a unique
// filename and returns the stored filename.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return newFilename, nil
}

// SaveBytes stores raw file content under destDir with a unique filename
// and returns the stored filename.
func SaveBytes(content []byte, ext, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	newFilename := uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return "", err
	}

	return newFilename, nil
}

// FileURL maps a stored filename to its public URL.
func FileURL(filename string) string {
	if filename == "" {
		return ""
	}
	return "/uploads/" + filename
}
