package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrTooLarge возвращается, когда загрузка превышает лимит.
var ErrTooLarge = errors.New("storage: размер файла превышает лимит")

// AvatarStorage сохраняет аватары пользователей и возвращает публичный URL.
type AvatarStorage interface {
	Save(ctx context.Context, userID uuid.UUID, ext string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// objectName строит имя объекта вида <userID>/<uuid><ext>.
func objectName(userID uuid.UUID, ext string) string {
	return userID.String() + "/" + uuid.NewString() + sanitizeExt(ext)
}

func sanitizeExt(ext string) string {
	ext = strings.ToLower(filepath.Base(ext))
	ext = strings.TrimLeft(ext, ".")
	ext = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, ext)
	if ext == "" {
		return ""
	}
	return "." + ext
}

// readLimited читает не более limit байт, иначе ErrTooLarge.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}
