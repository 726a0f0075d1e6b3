package oews

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// FetchResult records what a fetch run downloaded, for audit and for
// skipping re-parses of unchanged archives.
type FetchResult struct {
	Status       string    `yaml:"status"` // "downloaded" or "skip_unchanged"
	URL          string    `yaml:"url"`
	Bytes        int64     `yaml:"bytes"`
	SHA256       string    `yaml:"sha256"`
	XLSXPaths    []string  `yaml:"xlsx_paths"`
	DownloadedAt time.Time `yaml:"downloaded_at"`
}

// WriteResult writes the fetch result metadata next to the archive.
func WriteResult(path string, result FetchResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "oews: marshal fetch result")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "oews: write fetch result")
	}
	return nil
}

// ReadResult reads a previously written fetch result; a missing file
// returns (nil, nil).
func ReadResult(path string) (*FetchResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "oews: read fetch result")
	}
	var result FetchResult
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, eris.Wrap(err, "oews: parse fetch result")
	}
	return &result, nil
}

// FileSHA256 computes the hex SHA-256 digest of a file.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", eris.Wrap(err, "oews: open for checksum")
	}
	defer f.Close() //nolint:errcheck

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", eris.Wrap(err, "oews: checksum")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
