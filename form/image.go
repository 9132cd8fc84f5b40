package form

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrImageTooLarge = errors.New("image is too large")
	ErrImageType     = errors.New("unsupported image type")
)

var defaultImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

type ImageRules struct {
	MaxBytes int64
	Allowed  []string
}

func (r ImageRules) allowed() []string {
	if len(r.Allowed) == 0 {
		return defaultImageTypes
	}
	return r.Allowed
}

// ValidateImage checks size and sniffed content type and returns the detected MIME type.
func ValidateImage(data []byte, rules ImageRules) (string, error) {
	if rules.MaxBytes > 0 && int64(len(data)) > rules.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, len(data), rules.MaxBytes)
	}
	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), rules.allowed()...) {
		return "", fmt.Errorf("%w: %s", ErrImageType, mtype.String())
	}
	return mtype.String(), nil
}

// ReadImage pulls an optional image upload out of a parsed multipart request.
// It returns nil when the field was left empty.
func ReadImage(r *http.Request, field string, rules ImageRules) (*File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	limit := rules.MaxBytes
	if limit <= 0 {
		limit = 32 << 20
	}
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	ct, err := ValidateImage(data, rules)
	if err != nil {
		return nil, err
	}
	return &File{Field: field, Filename: header.Filename, ContentType: ct, Data: data}, nil
}
