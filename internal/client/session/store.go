package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore долговременное хранилище единственного токена сессии.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// DefaultTokenPath возвращает путь к файлу токена в каталоге настроек пользователя.
func DefaultTokenPath() (string, error) {
	const op = "session.DefaultTokenPath"
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return filepath.Join(dir, "primetrade", "token"), nil
}

// FileStore хранит токен в файле, доступном только владельцу.
type FileStore struct {
	path string
}

// NewFileStore создает FileStore по указанному пути.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load возвращает сохранённый токен или пустую строку, если файла нет.
func (s *FileStore) Load() (string, error) {
	const op = "session.FileStore.Load"
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save записывает токен с правами 0600.
func (s *FileStore) Save(token string) error {
	const op = "session.FileStore.Save"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	// WriteFile не меняет права уже существующего файла.
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет файл токена. Отсутствие файла ошибкой не считается.
func (s *FileStore) Clear() error {
	const op = "session.FileStore.Clear"
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MemoryStore хранит токен в памяти.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore создает MemoryStore с начальным токеном.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Load возвращает токен.
func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Save сохраняет токен.
func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear удаляет токен.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
