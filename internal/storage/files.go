package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/models"
)

const (
	releasesDir        = "releases"
	otherSourcesSubdir = "other-sources"
)

var (
	forbiddenChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// FileStore writes rendered release documents to a deterministic
// releases/<source-kind>/... tree under a base directory.
type FileStore struct {
	baseDir string
	logger  arbor.ILogger
}

// NewFileStore creates a file store rooted at baseDir.
func NewFileStore(baseDir string, logger arbor.ILogger) *FileStore {
	if baseDir == "" {
		baseDir = "."
	}
	return &FileStore{baseDir: baseDir, logger: logger}
}

// CleanFilename makes a path segment filesystem-safe: forbidden
// characters become underscores, leading/trailing dots and spaces are
// trimmed, and runs of underscores collapse to one.
func CleanFilename(name string) string {
	cleaned := forbiddenChars.ReplaceAllString(name, "_")
	cleaned = strings.Trim(cleaned, ". ")
	cleaned = underscoreRuns.ReplaceAllString(cleaned, "_")
	return cleaned
}

// GitHubReleasePath returns releases/github/<owner>/<name>/<tag>.md with
// every segment independently sanitized.
func (s *FileStore) GitHubReleasePath(repo, version string) string {
	parts := []string{s.baseDir, releasesDir, string(models.SourceTypeGitHub)}
	for _, part := range strings.Split(repo, "/") {
		parts = append(parts, CleanFilename(part))
	}
	parts = append(parts, CleanFilename(version)+".md")
	return filepath.Join(parts...)
}

// VSCodeReleasePath returns releases/vscode/<version>.md.
func (s *FileStore) VSCodeReleasePath(version string) string {
	return filepath.Join(s.baseDir, releasesDir, string(models.SourceTypeVSCode), CleanFilename(version)+".md")
}

// WebReleasePath returns releases/other-sources/<source>/<slug>.md.
func (s *FileStore) WebReleasePath(sourceName, slug string) string {
	return filepath.Join(s.baseDir, releasesDir, otherSourcesSubdir, CleanFilename(sourceName), CleanFilename(slug)+".md")
}

// SaveMarkdown writes content to path, creating missing parent
// directories and overwriting any existing file. Any I/O failure is
// reported as ErrPersistence.
func (s *FileStore) SaveMarkdown(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: creating directory %s: %v", models.ErrPersistence, dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("%w: writing file %s: %v", models.ErrPersistence, path, err)
	}

	s.logger.Debug().Str("path", path).Msg("Saved markdown document")
	return nil
}
