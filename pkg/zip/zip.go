// Package zip bundles in-memory files into a single archive.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// File is one archive entry.
type File struct {
	Name     string
	Data     []byte
	Modified time.Time
}

// Archive writes files into a zip archive in order. Entries are deflated.
func Archive(files []File) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, file := range files {
		header := &zip.FileHeader{Name: file.Name, Method: zip.Deflate, Modified: file.Modified}
		w, err := zw.CreateHeader(header)
		if err != nil {
			_ = zw.Close()
			return nil, fmt.Errorf("zip: create %s: %w", file.Name, err)
		}
		if _, err := w.Write(file.Data); err != nil {
			_ = zw.Close()
			return nil, fmt.Errorf("zip: write %s: %w", file.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
