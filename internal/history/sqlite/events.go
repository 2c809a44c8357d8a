package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/gamebeacon/internal/history"
)

// Record добавляет событие в журнал
func (s *Storage) Record(ctx context.Context, event *history.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO events (kind, server_id, map, players, max_players, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		string(event.Kind),
		event.ServerID,
		event.Map,
		event.Players,
		event.MaxPlayers,
		event.Message,
		event.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get event id: %w", err)
	}
	event.ID = id

	return nil
}

// Recent возвращает до limit событий, новые первыми
func (s *Storage) Recent(ctx context.Context, limit int) ([]*history.Event, error) {
	if limit <= 0 {
		return []*history.Event{}, nil
	}

	query := `
		SELECT id, kind, server_id, map, players, max_players, message, created_at
		FROM events
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	events := []*history.Event{}

	for rows.Next() {
		var (
			event     history.Event
			kind      string
			createdAt int64
		)
		if err := rows.Scan(
			&event.ID,
			&kind,
			&event.ServerID,
			&event.Map,
			&event.Players,
			&event.MaxPlayers,
			&event.Message,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.Kind = history.EventKind(kind)
		event.CreatedAt = time.UnixMilli(createdAt)
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// Prune удаляет события старше before
// Возвращает количество удалённых событий
func (s *Storage) Prune(ctx context.Context, before time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}
