package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jonathan/resume-tailor/internal/ident"
)

// DefaultMaxUploadSize is the upload limit when none is configured (10 MiB)
const DefaultMaxUploadSize int64 = 10 << 20

// DefaultAllowedTypes are the file types accepted for upload
var DefaultAllowedTypes = []string{"pdf", "docx", "text/plain"}

// UploadTooLargeError reports an upload over the size limit
type UploadTooLargeError struct {
	Limit int64
}

func (e *UploadTooLargeError) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.Limit)
}

// UnsupportedFormatError reports a file type that cannot be converted to text
type UnsupportedFormatError struct {
	MIME string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.MIME)
}

// Acceptor validates uploads and converts them to text
type Acceptor struct {
	MaxSize   int64
	Allowed   []string // Extensions ("pdf") or MIME types ("text/plain")
	Directory string   // When set, accepted originals are kept here
	Stamper   ident.Stamper
}

// NewAcceptor creates an acceptor, applying defaults for zero values
func NewAcceptor(maxSize int64, allowed []string) *Acceptor {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	if len(allowed) == 0 {
		allowed = DefaultAllowedTypes
	}
	return &Acceptor{MaxSize: maxSize, Allowed: allowed}
}

// Upload is an accepted, converted file
type Upload struct {
	Text     string
	Metadata *Metadata
}

// Accept reads at most MaxSize bytes from r, sniffs the content type and
// converts plain text or HTML to cleaned text. Allowed types without a text
// converter (pdf, docx) are reported as UnsupportedFormatError.
func (a *Acceptor) Accept(r io.Reader, filename string) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, a.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > a.MaxSize {
		return nil, &UploadTooLargeError{Limit: a.MaxSize}
	}

	mtype := mimetype.Detect(data)
	meta := &Metadata{
		Filename:  filename,
		MIME:      mtype.String(),
		Size:      len(data),
		Timestamp: a.Stamper.Time().Format(time.RFC3339),
	}

	var text string
	switch {
	case mtype.Is("text/html") && a.allows(mtype):
		if text, err = HTMLToText(string(data)); err != nil {
			return nil, err
		}
	case mtype.Is("text/plain") && a.allows(mtype):
		text = CleanText(string(bytes.ToValidUTF8(data, []byte("�"))))
	default:
		return nil, &UnsupportedFormatError{MIME: mtype.String()}
	}

	meta.Hash = HashText(text)
	if a.Directory != "" {
		if meta.StoredPath, err = a.store(data, mtype.Extension()); err != nil {
			return nil, err
		}
	}
	return &Upload{Text: text, Metadata: meta}, nil
}

// store writes the original bytes under Directory as <id><ext>
func (a *Acceptor) store(data []byte, ext string) (string, error) {
	if err := os.MkdirAll(a.Directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	path := filepath.Join(a.Directory, a.Stamper.ID()+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return path, nil
}

// allows reports whether the configured list admits the detected type.
// text/html is admitted whenever text/plain is.
func (a *Acceptor) allows(mtype *mimetype.MIME) bool {
	for _, allowed := range a.Allowed {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		switch {
		case strings.Contains(allowed, "/"):
			if mtype.Is(allowed) || (allowed == "text/plain" && mtype.Is("text/html")) {
				return true
			}
		case "."+strings.TrimPrefix(allowed, ".") == mtype.Extension():
			return true
		}
	}
	return false
}
