package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-assist/internal/models"
	"github.com/BruksfildServices01/barber-assist/internal/storage"
)

// Uploader grava um snapshot serializado do agregado em algum destino
// externo. A implementação padrão usa S3.
type Uploader interface {
	Upload(ctx context.Context, body []byte) error
}

type S3Uploader struct {
	client *s3.Client
	bucket string
}

func NewS3Uploader(region, bucket, accessKey, secretKey string) *S3Uploader {
	client := s3.New(s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	})
	return &S3Uploader{client: client, bucket: bucket}
}

func (u *S3Uploader) Upload(ctx context.Context, body []byte) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String("snapshots/" + storage.Key + ".json"),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	return err
}

// Dispatcher espelha cada write do agregado para o uploader, em
// background. Fila cheia descarta: o snapshot nunca pode travar uma
// mutação do store.
type Dispatcher struct {
	uploader Uploader
	logger   *zap.Logger
	queue    chan models.AppData
}

func NewDispatcher(uploader Uploader, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		uploader: uploader,
		logger:   logger,
		queue:    make(chan models.AppData, 16),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for data := range d.queue {
		b, err := json.Marshal(data)
		if err != nil {
			d.logger.Error("backup marshal failed", zap.Error(err))
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := d.uploader.Upload(ctx, b); err != nil {
			d.logger.Warn("backup upload failed", zap.Error(err))
		}
		cancel()
	}
}

// Dispatch enfileira um snapshot. Seguro chamar com d == nil (backup
// desabilitado por configuração).
func (d *Dispatcher) Dispatch(data models.AppData) {
	if d == nil {
		return
	}
	select {
	case d.queue <- data:
	default:
		d.logger.Warn("backup queue full, dropping snapshot")
	}
}
