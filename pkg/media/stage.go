// Package media stages uploaded files on local disk for the duration of a
// request and probes video files for their duration.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyFile indicates an uploaded part carried no bytes.
var ErrEmptyFile = errors.New("uploaded file is empty")

// Staged is an uploaded file written to a temporary path.
type Staged struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// Open returns a reader over the staged bytes.
func (s *Staged) Open() (*os.File, error) {
	return os.Open(s.Path)
}

// Remove deletes the staged file. Safe to call on a nil Staged.
func (s *Staged) Remove() error {
	if s == nil || s.Path == "" {
		return nil
	}
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Ext returns the lowercased extension of the original filename, including the dot.
func (s *Staged) Ext() string {
	return strings.ToLower(filepath.Ext(s.Filename))
}

// Stage copies the multipart file into dir and returns its location.
// The caller must Remove the result.
func Stage(fh *multipart.FileHeader, dir string) (*Staged, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp(dir, "reel-upload-*"+strings.ToLower(filepath.Ext(fh.Filename)))
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}

	staged := &Staged{
		Path:     dst.Name(),
		Filename: filepath.Base(fh.Filename),
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		dst.Close()
		staged.Remove()
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	written, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), src))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		staged.Remove()
		return nil, fmt.Errorf("write staging file: %w", err)
	}

	if written == 0 {
		staged.Remove()
		return nil, ErrEmptyFile
	}

	staged.Size = written
	staged.ContentType = contentType(fh.Header.Get("Content-Type"), head)
	return staged, nil
}

func contentType(header string, head []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(head)
}
