package storage

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-assist/internal/models"
)

// Key é a chave fixa sob a qual o agregado inteiro é guardado.
const Key = "barber_assist_data_v1"

// ErrNotFound indica que ainda não existe agregado persistido; o store
// semeia os dados de fixture nesse caso.
var ErrNotFound = errors.New("storage: data not found")

// Persister é o colaborador de persistência: carrega e grava o agregado
// inteiro como um único documento JSON. Sem updates parciais, sem
// versionamento, último write vence.
type Persister interface {
	Load(ctx context.Context) (*models.AppData, error)
	Save(ctx context.Context, data *models.AppData) error
}
