package manager

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"

	domainerrors "github.com/leengari/csvbreaker/internal/domain/errors"
)

func TestDiscoverCSVFiles(t *testing.T) {
	dir := fs.NewDir(t, "input",
		fs.WithFile("b.csv", "ID\n"),
		fs.WithFile("a.csv", "ID\n"),
		fs.WithFile("notes.txt", "x"),
		fs.WithFile("upper.CSV", "ID\n"),
		fs.WithFile(".hidden.csv", "ID\n"),
		fs.WithDir("dir.csv"),
		fs.WithDir(OutputDirName, fs.WithFile("old_1.csv", "ID\n")),
	)

	files, err := NewWorkspace(dir.Path()).DiscoverCSVFiles()
	assert.NilError(t, err)

	assert.DeepEqual(t, files, []string{
		filepath.Join(dir.Path(), "a.csv"),
		filepath.Join(dir.Path(), "b.csv"),
	})
}

func TestDiscoverCSVFilesEmptyDirectory(t *testing.T) {
	files, err := NewWorkspace(t.TempDir()).DiscoverCSVFiles()
	assert.NilError(t, err)
	assert.Assert(t, is.Len(files, 0))
}

func TestDiscoverCSVFilesMissingDirectory(t *testing.T) {
	_, err := NewWorkspace(filepath.Join(t.TempDir(), "gone")).DiscoverCSVFiles()
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
}

func TestResetOutputDirCreatesFresh(t *testing.T) {
	dir := fs.NewDir(t, "input",
		fs.WithDir(OutputDirName,
			fs.WithFile("stale_1.csv", "ID\n"),
			fs.WithDir("nested", fs.WithFile("x", "y")),
		),
	)
	ws := NewWorkspace(dir.Path())

	assert.NilError(t, ws.ResetOutputDir(nil))

	entries, err := os.ReadDir(ws.OutputDir)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(entries, 0))
}

func TestResetOutputDirWhenAbsent(t *testing.T) {
	ws := NewWorkspace(t.TempDir())

	assert.NilError(t, ws.ResetOutputDir(nil))

	info, err := os.Stat(ws.OutputDir)
	assert.NilError(t, err)
	assert.Assert(t, info.IsDir())
}

func TestResetOutputDirFailure(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}

	dir := t.TempDir()
	assert.NilError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	err := NewWorkspace(dir).ResetOutputDir(nil)

	var outErr *domainerrors.OutputDirectoryError
	assert.Assert(t, errors.As(err, &outErr))
	assert.Equal(t, outErr.Op, "create")
	assert.Equal(t, outErr.Path, filepath.Join(dir, OutputDirName))
}

func TestResetOutputDirKeepsRegularFile(t *testing.T) {
	dir := fs.NewDir(t, "input",
		fs.WithFile(OutputDirName, "user data"),
	)
	ws := NewWorkspace(dir.Path())

	err := ws.ResetOutputDir(nil)

	var outErr *domainerrors.OutputDirectoryError
	assert.Assert(t, errors.As(err, &outErr), "expected OutputDirectoryError, got %v", err)
	assert.Equal(t, outErr.Op, "create")
	assert.Equal(t, outErr.Path, ws.OutputDir)

	data, err := os.ReadFile(ws.OutputDir)
	assert.NilError(t, err)
	assert.Equal(t, string(data), "user data")
}

func TestResetOutputDirKeepsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges")
	}

	target := fs.NewDir(t, "target", fs.WithFile("keep.csv", "ID\n"))
	dir := fs.NewDir(t, "input",
		fs.WithSymlink(OutputDirName, target.Path()),
	)

	err := NewWorkspace(dir.Path()).ResetOutputDir(nil)

	var outErr *domainerrors.OutputDirectoryError
	assert.Assert(t, errors.As(err, &outErr), "expected OutputDirectoryError, got %v", err)

	_, err = os.Stat(target.Join("keep.csv"))
	assert.NilError(t, err)
}

func TestResetOutputDirLogsToGivenLogger(t *testing.T) {
	dir := fs.NewDir(t, "input", fs.WithDir(OutputDirName))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	assert.NilError(t, NewWorkspace(dir.Path()).ResetOutputDir(logger))
	assert.Assert(t, is.Contains(buf.String(), "removing existing output directory"))
}

func TestOutputPath(t *testing.T) {
	ws := NewWorkspace("/data/in")
	assert.Equal(t, ws.OutputPath("sales", 2), filepath.Join("/data/in", "outputs", "sales_2.csv"))
	assert.Equal(t, OutputFileName("a.b", 1), "a.b_1.csv")
}
