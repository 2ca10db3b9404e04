package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalAvatarStorage хранит аватары на диске и отдаёт их по префиксу publicPrefix.
type LocalAvatarStorage struct {
	rootPath       string
	publicPrefix   string
	maxUploadBytes int64
}

// NewLocalAvatarStorage создаёт файловое хранилище.
func NewLocalAvatarStorage(rootPath, publicPrefix string, maxUploadMB int64) (*LocalAvatarStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &LocalAvatarStorage{
		rootPath:       rootPath,
		publicPrefix:   strings.TrimRight(publicPrefix, "/"),
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save сохраняет файл через временный файл и возвращает публичный URL.
func (s *LocalAvatarStorage) Save(ctx context.Context, userID uuid.UUID, ext string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := objectName(userID, ext)
	targetPath := filepath.Join(s.rootPath, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: не удалось создать каталог пользователя: %w", err)
	}

	tempPath := targetPath + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, s.maxUploadBytes+1))
	if err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка записи файла: %w", err)
	}
	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", ErrTooLarge
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return s.publicPrefix + "/" + name, nil
}

// Delete удаляет файл по его URL. Чужие URL игнорируются.
func (s *LocalAvatarStorage) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rel, ok := strings.CutPrefix(url, s.publicPrefix+"/")
	if !ok || rel == "" {
		return nil
	}
	rel = path.Clean(rel)
	if strings.HasPrefix(rel, "..") {
		return nil
	}

	target := filepath.Join(s.rootPath, filepath.FromSlash(rel))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}
