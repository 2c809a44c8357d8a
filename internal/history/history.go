// Package history defines the journal of listing lifecycle events.
package history

import (
	"context"
	"time"
)

// EventKind - тип события журнала
type EventKind string

const (
	EventRegistered     EventKind = "registered"
	EventRegisterFailed EventKind = "register_failed"
	EventUpdated        EventKind = "updated"
	EventUpdateFailed   EventKind = "update_failed"
	EventLeaseLost      EventKind = "lease_lost"
	EventDeleted        EventKind = "deleted"
)

// Event is one journal record. Map and player counts reflect the snapshot
// that triggered the event, when there was one.
type Event struct {
	CreatedAt  time.Time `json:"created_at"`
	Kind       EventKind `json:"kind"`
	ServerID   string    `json:"server_id,omitempty"`
	Map        string    `json:"map,omitempty"`
	Message    string    `json:"message,omitempty"`
	ID         int64     `json:"id"`
	Players    int       `json:"players"`
	MaxPlayers int       `json:"max_players"`
}

//go:generate moq -out recorder_mock.go . Recorder

// Recorder определяет интерфейс журнала событий
type Recorder interface {
	// Record добавляет событие; ID и нулевой CreatedAt заполняются
	Record(ctx context.Context, event *Event) error

	// Recent возвращает до limit событий, новые первыми
	Recent(ctx context.Context, limit int) ([]*Event, error)
}
