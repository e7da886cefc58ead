// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/stripdef/pkg/block"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus is what happened (or would happen) to an output file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // Output did not exist
	StatusModified             // Output existed with different content
	StatusUnchanged            // Output already had this content
	StatusSkipped              // Dry run, nothing written
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// 📄 FileResult is the outcome of cleaning one input
type FileResult struct {
	Input    string        // Input path, never modified
	Output   string        // Path the cleaned text goes to
	Status   FileStatus    // Output file status
	Checksum string        // SHA-256 of the cleaned text
	Result   *block.Result // Per-rule report
}

// 💾 FileManager handles the file system side of a run
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	StageFile(ctx context.Context, path string, content []byte) (*StagedFile, error)
	FileExists(ctx context.Context, path string) (bool, error)
}

// 🔧 Manager implements FileManager and keeps the results of a run in order
type Manager struct {
	baseDir string // Relative paths resolve against this; empty means the working directory

	mu    sync.Mutex
	files []FileResult
}

var _ FileManager = (*Manager)(nil)

// 🏭 NewManager creates a new status manager
func NewManager(baseDir string) *Manager {
	if baseDir != "" {
		baseDir = filepath.Clean(baseDir)
	}
	return &Manager{baseDir: baseDir}
}

// 🔒 getAbsPath resolves path against the base directory
func (m *Manager) getAbsPath(path string) string {
	if m.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// 🔍 Checksum returns the hex SHA-256 of content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.getAbsPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// WriteFileAtomic writes content to a temp file next to path and renames it
// into place, so a failed write never leaves a partial output.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	staged, err := m.StageFile(ctx, path, content)
	if err != nil {
		return err
	}
	return staged.Commit(ctx)
}

// 📦 StagedFile is content written to a temp file beside its destination,
// waiting to be renamed into place
type StagedFile struct {
	path     string
	tempPath string
}

// StageFile writes content to a temp file in path's directory without
// touching path itself. The result must be committed or discarded.
func (m *Manager) StageFile(ctx context.Context, path string, content []byte) (*StagedFile, error) {
	absPath := m.getAbsPath(path)
	dir := filepath.Dir(absPath)

	if info, err := os.Stat(absPath); err == nil && !info.Mode().IsRegular() {
		return nil, errors.Errorf("%s is not a regular file", absPath)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Errorf("creating parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(absPath)+".tmp-*")
	if err != nil {
		return nil, errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return nil, errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return nil, errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return nil, errors.Errorf("setting file mode: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Str("temp", tempPath).Int("bytes", len(content)).Msg("staged file")
	return &StagedFile{path: absPath, tempPath: tempPath}, nil
}

// Path is the destination the file is committed to.
func (s *StagedFile) Path() string {
	return s.path
}

// Commit renames the temp file over the destination.
func (s *StagedFile) Commit(ctx context.Context) error {
	if err := os.Rename(s.tempPath, s.path); err != nil {
		os.Remove(s.tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Msg("wrote file")
	return nil
}

// Discard removes the temp file. It is safe after a failed Commit.
func (s *StagedFile) Discard() {
	os.Remove(s.tempPath)
}

// 🔎 StatusFor compares content with what is already at path
func (m *Manager) StatusFor(ctx context.Context, path string, content []byte) (FileStatus, error) {
	exists, err := m.FileExists(ctx, path)
	if err != nil {
		return StatusUnknown, err
	}
	if !exists {
		return StatusNew, nil
	}

	current, err := m.ReadFile(ctx, path)
	if err != nil {
		return StatusUnknown, err
	}
	if bytes.Equal(current, content) {
		return StatusUnchanged, nil
	}
	return StatusModified, nil
}

// TrackFile records a file result.
func (m *Manager) TrackFile(ctx context.Context, res FileResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, res)
}

// ListFiles returns tracked results in the order they were tracked.
func (m *Manager) ListFiles(ctx context.Context) []FileResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]FileResult(nil), m.files...)
}

// Report builds a report over every tracked file.
func (m *Manager) Report(ctx context.Context) *Report {
	return NewReport(m.ListFiles(ctx))
}
