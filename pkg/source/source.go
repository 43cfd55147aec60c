package source

import (
	"os"
	"path/filepath"
	"strings"
)

// SourceFile represents a Bead source file with its content and metadata.
type SourceFile struct {
	Name    string   // Display name (e.g., "logger.bead", "<string>")
	Path    string   // Full file path (empty for in-memory sources)
	Content string   // The source code content
	lines   []string // Cached split lines (lazy initialization)
}

// NewSourceFile creates a new source file.
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// FromString creates a source file for in-memory input (tests, -e style use).
func FromString(content string) *SourceFile {
	return &SourceFile{
		Name:    "<string>",
		Path:    "",
		Content: content,
	}
}

// FromFile creates a SourceFile from a file path and its content.
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}

// ReadFile loads a source file from disk.
func ReadFile(filePath string) (*SourceFile, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromFile(filePath, string(content)), nil
}

// Lines returns the source split into lines (cached).
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name).
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// IsFile returns true if this represents an actual file (has a path).
func (sf *SourceFile) IsFile() bool {
	return sf.Path != ""
}
