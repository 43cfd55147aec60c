package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml"

	"bead/pkg/errors"
	"bead/pkg/types"
)

// ProjectFileName is the manifest a Bead project directory carries.
const ProjectFileName = "bead.toml"

// SourceExt is the extension of Bead source files.
const SourceExt = ".bead"

// tomlProject mirrors the manifest's on-disk shape.
type tomlProject struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	SrcDir  string `toml:"src-dir"`
}

// Project is a loaded Bead project: its manifest plus the source files the
// manifest's source directory contains, in sorted order.
type Project struct {
	Name    string
	Version string
	Root    string
	Files   []string
}

// LoadProject reads the bead.toml manifest in dir and collects the
// project's source files.
func LoadProject(dir string) (*Project, error) {
	buff, err := os.ReadFile(filepath.Join(dir, ProjectFileName))
	if err != nil {
		return nil, fmt.Errorf("unable to open project file in `%s`: %w", dir, err)
	}

	manifest := &tomlProject{}
	if err := toml.Unmarshal(buff, manifest); err != nil {
		return nil, fmt.Errorf("error parsing project file in `%s`: %w", dir, err)
	}
	if manifest.Name == "" {
		return nil, fmt.Errorf("project file in `%s` is missing a name", dir)
	}

	srcDir := dir
	if manifest.SrcDir != "" {
		srcDir = filepath.Join(dir, manifest.SrcDir)
	}
	files, err := collectSourceFiles(srcDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("project `%s` has no %s files under `%s`", manifest.Name, SourceExt, srcDir)
	}

	return &Project{
		Name:    manifest.Name,
		Version: manifest.Version,
		Root:    dir,
		Files:   files,
	}, nil
}

// CheckProject loads the project manifest in dir and checks all of its
// source files as one program.
func CheckProject(dir string) (*types.ResolvedProgram, []errors.BeadError) {
	project, err := LoadProject(dir)
	if err != nil {
		return nil, []errors.BeadError{&errors.SyntaxError{Msg: err.Error(), Cause: err}}
	}
	return CheckFiles(project.Files)
}

func collectSourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read source directory `%s`: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SourceExt) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
