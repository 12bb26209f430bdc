package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-assist/internal/models"
)

// RedisPersister guarda o agregado inteiro sob a chave fixa.
type RedisPersister struct {
	rdb *redis.Client
	key string
}

func NewRedisPersister(url string) (*RedisPersister, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisPersister{
		rdb: redis.NewClient(opt),
		key: Key,
	}, nil
}

func (p *RedisPersister) Load(ctx context.Context) (*models.AppData, error) {
	b, err := p.rdb.Get(ctx, p.key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var data models.AppData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.key, err)
	}
	return &data, nil
}

func (p *RedisPersister) Save(ctx context.Context, data *models.AppData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	// Sem TTL: o documento vive até o próximo write.
	return p.rdb.Set(ctx, p.key, b, 0).Err()
}
