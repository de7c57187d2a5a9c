package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenderFile renders a user template file with default delimiters. The output
// name is the file's base name without a trailing ".tmpl".
func RenderFile(path string, data map[string]any) (name, content string, err error) {
	// #nosec G304 -- template paths come from the configuration file
	body, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read template %s: %w", path, err)
	}
	name = strings.TrimSuffix(filepath.Base(path), ".tmpl")
	content, err = RenderTemplateBody(filepath.Base(path), string(body), DefaultDelims, data)
	if err != nil {
		return "", "", err
	}
	return name, content, nil
}

// WriteGeneratedFile writes content to relativePath under outDir, replacing
// any previous version atomically.
//
// The function ensures:
//   - The output path is relative to outDir (no path traversal)
//   - Parent directories are created if needed
//   - Readers never observe a half-written file
func WriteGeneratedFile(outDir, relativePath, content string) (string, error) {
	if outDir == "" {
		return "", errors.New("output directory is required")
	}
	if relativePath == "" {
		return "", errors.New("output path is required")
	}

	cleanRel := filepath.Clean(relativePath)
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", errors.New("output path must be relative to the output directory")
	}
	fullPath := filepath.Join(outDir, cleanRel)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), "."+filepath.Base(fullPath)+".*")
	if err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	return fullPath, nil
}
