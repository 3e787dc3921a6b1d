package media

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/JaimeStill/reel/pkg/formatting"
)

// Multipart parsing errors.
var (
	ErrTooLarge     = errors.New("upload exceeds maximum size")
	ErrInvalidForm  = errors.New("invalid multipart form")
	memoryThreshold = int64(8 << 20)
)

// ParseForm limits the request body to maxBytes and parses it as multipart form data.
// Parts beyond the in-memory threshold spill to temporary files managed by net/http.
func ParseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(min(memoryThreshold, maxBytes)); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w (limit %s)", ErrTooLarge, formatting.FormatBytes(maxBytes))
		}
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}

// StageField stages the first file in the named form field into dir.
// Returns nil without error when the field carries no file.
func StageField(form *multipart.Form, field, dir string) (*Staged, error) {
	if form == nil {
		return nil, nil
	}

	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}

	return Stage(files[0], dir)
}
