package manager

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	domainerrors "github.com/leengari/csvbreaker/internal/domain/errors"
)

const (
	// OutputDirName is the subdirectory of the input directory that receives output files
	OutputDirName = "outputs"

	// InputPattern selects input files inside the input directory
	InputPattern = "*.csv"
)

// Workspace is an input directory and its outputs subdirectory
type Workspace struct {
	InputDir  string
	OutputDir string
}

// NewWorkspace creates a workspace rooted at inputDir
func NewWorkspace(inputDir string) *Workspace {
	return &Workspace{
		InputDir:  inputDir,
		OutputDir: filepath.Join(inputDir, OutputDirName),
	}
}

// DiscoverCSVFiles lists the files directly inside the input directory whose
// names match InputPattern, in lexical order. Hidden files and directories
// are skipped.
func (w *Workspace) DiscoverCSVFiles() ([]string, error) {
	entries, err := os.ReadDir(w.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		matched, err := filepath.Match(InputPattern, name)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}

		path := filepath.Join(w.InputDir, name)

		// Stat follows symlinks so linked files are included
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		files = append(files, path)
	}

	return files, nil
}

// ResetOutputDir removes the outputs directory with everything in it, then
// creates it again empty. Results of earlier runs are lost.
// Anything at that path that is not a directory, symlinks included, is left
// alone and reported as an error. A nil logger means slog.Default().
func (w *Workspace) ResetOutputDir(logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Lstat(w.OutputDir)
	switch {
	case err == nil && !info.IsDir():
		return &domainerrors.OutputDirectoryError{
			Path: w.OutputDir,
			Op:   "create",
			Err:  errors.New("path exists and is not a directory"),
		}
	case err == nil:
		logger.Warn("removing existing output directory", slog.String("path", w.OutputDir))

		if err := os.RemoveAll(w.OutputDir); err != nil {
			return &domainerrors.OutputDirectoryError{Path: w.OutputDir, Op: "remove", Err: err}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return &domainerrors.OutputDirectoryError{Path: w.OutputDir, Op: "remove", Err: err}
	}

	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return &domainerrors.OutputDirectoryError{Path: w.OutputDir, Op: "create", Err: err}
	}

	return nil
}

// OutputPath returns <outputs>/<table>_<seq>.csv
func (w *Workspace) OutputPath(tableName string, seq int) string {
	return filepath.Join(w.OutputDir, OutputFileName(tableName, seq))
}

// OutputFileName returns <table>_<seq>.csv
func OutputFileName(tableName string, seq int) string {
	return fmt.Sprintf("%s_%d.csv", tableName, seq)
}
