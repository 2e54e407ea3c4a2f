// Package output holds generated artifacts and writes them to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// File is one generated artifact.
type File struct {
	// Filename is relative to the output directory (e.g., "meta.json").
	Filename string
	// Content is the serialized document.
	Content []byte
}

// WriteFiles writes all files to outputDir, creating it (and any
// subdirectory a filename names) when missing. It returns the written paths.
func WriteFiles(files []File, outputDir string) ([]string, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	written := make([]string, 0, len(files))

	for _, file := range files {
		if file.Filename == "" || filepath.IsAbs(file.Filename) || escapes(file.Filename) {
			return written, fmt.Errorf("invalid output filename %q", file.Filename)
		}

		outputPath := filepath.Join(outputDir, file.Filename)

		if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
			return written, fmt.Errorf("creating directory for %s: %w", file.Filename, err)
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written = append(written, outputPath)
	}

	return written, nil
}

func escapes(name string) bool {
	clean := filepath.Clean(name)
	return clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
