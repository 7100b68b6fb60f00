package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"trolley/pkg/platform/sentinel"
)

// FileStore persists the credential as a single 0600 file so the session
// survives process restarts.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (string, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read credential slot: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", sentinel.ErrNotFound
	}
	return token, nil
}

func (s *FileStore) Save(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write credential slot: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear credential slot: %w", err)
	}
	return nil
}
