package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BruksfildServices01/barber-assist/internal/models"
)

// FilePersister guarda o agregado num arquivo JSON local. É o driver
// padrão, equivalente direto do blob em local storage da versão web.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Load(ctx context.Context) (*models.AppData, error) {
	b, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}

	var data models.AppData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.path, err)
	}
	return &data, nil
}

func (p *FilePersister) Save(ctx context.Context, data *models.AppData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, b, 0o644)
}
