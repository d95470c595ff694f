package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 50 << 20

var ErrNoFiles = errors.New("no files uploaded")

// UploadedFile is a multipart part read fully into memory.
type UploadedFile struct {
	Filename string
	Body     []byte
}

// ReadUploadedFiles collects the files posted under field, skipping any whose
// extension is not in exts. An empty exts accepts everything.
func ReadUploadedFiles(c *gin.Context, field string, exts ...string) ([]UploadedFile, error) {
	// Parse multipart form (max 50 MB)
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	form := c.Request.MultipartForm
	headers := form.File[field]

	uploaded := []UploadedFile{}
	for _, header := range headers {
		if !allowed(header.Filename, exts) {
			continue
		}
		body, err := readPart(header)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, UploadedFile{Filename: filepath.Base(header.Filename), Body: body})
	}
	if len(uploaded) == 0 {
		return nil, ErrNoFiles
	}
	return uploaded, nil
}

func allowed(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
