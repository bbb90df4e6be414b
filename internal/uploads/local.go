package uploads

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage — контракт хранилища документов заявок.
// Единственная операция: сохранить байты, вернуть путь доступа.
type Storage interface {
	Store(data []byte, filename string) (string, error)
}

// Local пишет в каталог на диске. Прод-вариант (S3 и т.п.)
// подключается через тот же интерфейс.
type Local struct{ dir string }

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Store(data []byte, filename string) (string, error) {
	// uuid-префикс против коллизий имён
	name := uuid.NewString() + "_" + filepath.Base(filename)
	path := filepath.Join(l.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
