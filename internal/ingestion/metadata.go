package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
)

// Metadata describes an accepted upload
type Metadata struct {
	Filename   string `json:"filename,omitempty"`
	MIME       string `json:"mime"`
	Size       int    `json:"size"`      // Bytes received
	Hash       string `json:"hash"`      // SHA256 hex digest of the converted text
	Timestamp  string `json:"timestamp"` // RFC3339
	StoredPath string `json:"stored_path,omitempty"`
}

// HashText returns the hex SHA256 digest of content
func HashText(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
