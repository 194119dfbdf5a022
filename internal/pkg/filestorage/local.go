package filestorage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // URL prefix of stored files, "/uploads" when empty
	logger   zerolog.Logger
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
func NewLocalStorage(basePath, baseURL string, logger zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	if baseURL == "" {
		baseURL = "/uploads"
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}, nil
}

// BasePath returns the storage root
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// Save writes data to a uniquely named file under subPath
func (ls *LocalStorage) Save(data []byte, ext, subPath string) (string, error) {
	dir := filepath.Join(ls.basePath, filepath.Clean("/"+subPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		ls.logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	// Generate a unique filename to prevent collisions
	name := uuid.New().String() + strings.ToLower(ext)
	dst := filepath.Join(dir, name)

	if err := os.WriteFile(dst, data, 0o644); err != nil {
		ls.logger.Error().Err(err).Str("path", dst).Msg("Failed to write file")
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	url := path.Join(ls.baseURL, subPath, name)
	if strings.Contains(ls.baseURL, "://") {
		url = ls.baseURL + "/" + path.Join(subPath, name)
	}

	ls.logger.Info().Str("url", url).Int("size", len(data)).Msg("File saved successfully")
	return url, nil
}

// DeleteFile removes a stored file. Returns nil if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	physicalPath := ls.GetFullPath(fileURL)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", fileURL)
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			ls.logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		ls.logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	ls.logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath maps a stored file URL back to its location on disk
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	rel := strings.TrimPrefix(fileURL, ls.baseURL)
	if rel == fileURL && !strings.HasPrefix(fileURL, "/") {
		return ""
	}

	// Cleaning against "/" removes any ".." that would escape the base
	rel = path.Clean("/" + rel)
	if rel == "/" {
		return ""
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(rel))
}
