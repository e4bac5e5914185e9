package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Emitter writes per-file catalogs as JSON files under the configured
// messages directory, mirroring the source tree layout.
type Emitter struct {
	opts Options
}

// NewEmitter creates an emitter for the given options.
func NewEmitter(opts Options) *Emitter {
	return &Emitter{opts: opts}
}

// Enabled reports whether catalog-file emission is configured.
func (e *Emitter) Enabled() bool {
	return e.opts.MessagesDir != ""
}

// OutputPath derives the catalog path for a source file:
// messagesDir/<relative dir of source>/<basename without extension>.json.
func (e *Emitter) OutputPath(sourcePath string) string {
	rel := sourcePath
	if e.opts.WorkDir != "" {
		if r, err := filepath.Rel(e.opts.WorkDir, sourcePath); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}

	base := filepath.Base(rel)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	return filepath.Join(e.opts.MessagesDir, filepath.Dir(rel), base)
}

// Write serializes a file's descriptor list as 2-space-indented JSON,
// creating intermediate directories as needed. Nothing is written when
// emission is disabled or the result is empty; the returned path is ""
// in that case.
func (e *Emitter) Write(result *FileResult) (string, error) {
	if !e.Enabled() || len(result.Descriptors) == 0 {
		return "", nil
	}

	outPath := e.OutputPath(result.File)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(result.Descriptors, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize catalog for %s: %w", result.File, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return outPath, nil
}
