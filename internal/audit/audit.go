// Package audit appends immutable records for privileged state transitions.
// Writes are best-effort: a failed audit write is logged and never fails or
// rolls back the action it describes.
package audit

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/repository"
	"gorm.io/datatypes"
)

type Writer struct {
	repo repository.AuditLogRepository
	log  zerolog.Logger
}

func NewWriter(repo repository.AuditLogRepository, log zerolog.Logger) *Writer {
	return &Writer{repo: repo, log: log}
}

// Record appends one audit row for the actor's action.
func (w *Writer) Record(actorID uint64, action string, detail map[string]any) {
	if detail == nil {
		detail = map[string]any{}
	}

	data, err := json.Marshal(detail)
	if err != nil {
		w.log.Error().Err(err).Str("action", action).Msg("audit detail marshal failed")
		data = []byte("{}")
	}

	entry := &models.AuditLog{
		Action:  action,
		Detail:  datatypes.JSON(data),
		ActorID: actorID,
	}
	if err := w.repo.Append(entry); err != nil {
		w.log.Error().Err(err).Str("action", action).Uint64("actor_id", actorID).Msg("audit write failed")
	}
}
