package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/psique-web/internal/models"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

// Sink grava um evento. É chamado só pelo worker do Dispatcher.
type Sink interface {
	Record(ev Event) error
}

// GormSink grava em audit_logs.
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Record(ev Event) error {
	row := models.AuditLog{
		VisitorID: ev.VisitorID,
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metadataJSON(ev.Metadata),
	}
	return s.db.Create(&row).Error
}

// LogSink escreve o evento como linha de log estruturado. Usado quando não
// há banco configurado.
type LogSink struct {
	logger *logging.Logger
}

func NewLogSink(logger *logging.Logger) *LogSink {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(ev Event) error {
	args := []any{
		"action", ev.Action,
		"entity", ev.Entity,
		"visitor_id", ev.VisitorID,
	}
	if ev.UserID != nil {
		args = append(args, "user_id", *ev.UserID)
	}
	if ev.EntityID != nil {
		args = append(args, "entity_id", *ev.EntityID)
	}
	if meta := metadataJSON(ev.Metadata); meta != "" {
		args = append(args, "metadata", meta)
	}
	s.logger.Info("audit", args...)
	return nil
}

func metadataJSON(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
