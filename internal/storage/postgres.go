package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-assist/internal/models"
)

// AppDocument é a linha singleton que carrega o agregado serializado.
// Continua sendo um documento só: a troca de driver não muda o contrato
// de "grava tudo, lê tudo".
type AppDocument struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:64;uniqueIndex"`
	Payload   []byte
	UpdatedAt time.Time
}

type PostgresPersister struct {
	db *gorm.DB
}

func NewPostgresPersister(dbURL string) (*PostgresPersister, error) {
	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(&AppDocument{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &PostgresPersister{db: db}, nil
}

func (p *PostgresPersister) Load(ctx context.Context) (*models.AppData, error) {
	var doc AppDocument
	err := p.db.WithContext(ctx).
		Where("key = ?", Key).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var data models.AppData
	if err := json.Unmarshal(doc.Payload, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", Key, err)
	}
	return &data, nil
}

func (p *PostgresPersister) Save(ctx context.Context, data *models.AppData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}

	doc := AppDocument{Key: Key, Payload: b}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&doc).Error
}
