package handler

import (
	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/utils"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventImpl is the audit log: durable records of token/group lifecycle
// and anything the log hook escalates.
type EventImpl struct {
	tx  *gorm.DB
	orm *qn.ORM[qn.Event]
}

var Event = &EventImpl{}

func (e *EventImpl) WithTx(tx *gorm.DB) qn.EventHandler {
	if tx == nil {
		tx = qn.Quill.DB
	}
	return &EventImpl{
		tx:  tx,
		orm: qn.NewORM[qn.Event](tx),
	}
}

func (e *EventImpl) New(level qn.EventLevel, category string, source string, message string) error {
	return e.orm.Create(&qn.Event{
		Level:    level,
		Category: category,
		Source:   source,
		Message:  message,
	})
}

func (e *EventImpl) GetAll(cond *qn.Condition) ([]*qn.Event, error) {
	return e.orm.Cond(cond).Find()
}

func (e *EventImpl) Count(cond *qn.Condition) (int64, error) {
	return e.orm.Count(cond)
}

func (e *EventImpl) DeleteAll() (int64, error) {
	return e.orm.DeleteAll()
}

// EventHook records warn and above log entries as audit events.
type EventHook struct{}

func (h EventHook) Levels() []log.Level {
	return []log.Level{
		log.WarnLevel,
		log.ErrorLevel,
		log.FatalLevel,
	}
}

func (h EventHook) Fire(e *log.Entry) error {
	var level qn.EventLevel
	switch e.Level {
	case log.WarnLevel:
		level = qn.EventWarning
	case log.ErrorLevel:
		level = qn.EventError
	case log.FatalLevel:
		level = qn.EventCritical
	}
	// log may in transaction, prevent deadlock
	go qn.Quill.Event.New(level, "log", "quill", e.Message+" "+utils.MustMarshal(e.Data))
	return nil
}
