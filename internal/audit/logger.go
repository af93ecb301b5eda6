package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// Recorder grava entradas de auditoria (gorm ou memória).
type Recorder interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

type Logger struct {
	store Recorder
}

func New(store Recorder) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.store.CreateAuditLog(ctx, &entry)
}
