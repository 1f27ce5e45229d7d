package chat

import (
	"context"
	"fmt"

	"travelagg/pkg/db"
)

type Repository interface {
	Save(ctx context.Context, m *Message) error
	Thread(ctx context.Context, packageID, userID string, limit int) ([]Message, error)
}

type SQLRepository struct {
	db db.SQLExecutor
}

func NewSQLRepository(client db.SQLExecutor) *SQLRepository {
	return &SQLRepository{db: client}
}

func (r *SQLRepository) Save(ctx context.Context, m *Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, package_id, user_id, sender_type, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.PackageID, m.UserID, m.SenderType, m.Message, m.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// Thread returns the latest limit messages of one user's conversation about a
// package, oldest first.
func (r *SQLRepository) Thread(ctx context.Context, packageID, userID string, limit int) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, package_id, user_id, sender_type, message, created_at FROM (
			SELECT id, package_id, user_id, sender_type, message, created_at
			FROM chat_messages
			WHERE package_id = ? AND user_id = ?
			ORDER BY id DESC
			LIMIT ?
		) latest ORDER BY id ASC`,
		packageID, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.PackageID, &m.UserID, &m.SenderType, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat messages: %w", err)
	}
	return messages, nil
}
