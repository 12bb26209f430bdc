package storage

import (
	"fmt"

	"github.com/BruksfildServices01/barber-assist/internal/config"
)

// New monta o persister configurado. Driver desconhecido é erro de
// configuração, não fallback silencioso.
func New(cfg *config.Config) (Persister, error) {
	switch cfg.StorageDriver {
	case "file":
		return NewFilePersister(cfg.StorageFile), nil
	case "redis":
		return NewRedisPersister(cfg.RedisURL)
	case "postgres":
		return NewPostgresPersister(cfg.DBUrl)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
