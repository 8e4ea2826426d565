// Package imageenc turns uploaded files into self-contained data URLs.
package imageenc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrEmpty      = errors.New("image file is empty")
	ErrUnreadable = errors.New("image file could not be read")
)

// Encode reads r fully and returns data:<mime>;base64,<payload>.
func Encode(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(raw) == 0 {
		return "", ErrEmpty
	}
	return EncodeBytes(raw), nil
}

// EncodeBytes builds the data URL for raw content.
func EncodeBytes(raw []byte) string {
	mime := mimetype.Detect(raw).String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}

	var b bytes.Buffer
	b.Grow(len("data:;base64,") + len(mime) + base64.StdEncoding.EncodedLen(len(raw)))
	b.WriteString("data:")
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(raw))
	return b.String()
}

// EncodeFile encodes an uploaded multipart file.
func EncodeFile(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrEmpty
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()
	return Encode(f)
}
