package database

import (
	"context"
	"fmt"
	"time"
)

// User preferences are free-text notes ("no laundry after 22:00") that the
// advice generator folds into its prompt.

func (d *Database) SaveUserPreference(ctx context.Context, userID, preference string) error {
	_, err := d.write.ExecContext(ctx, `
		INSERT INTO user_preference (created_at, user_id, preference)
		VALUES (?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		userID,
		preference)
	if err != nil {
		return fmt.Errorf("saving user preference: %w", err)
	}
	return nil
}

// GetUserPreferences returns the most recently saved preferences first.
func (d *Database) GetUserPreferences(ctx context.Context, userID string, limit int) ([]string, error) {
	if limit < 1 {
		limit = 5
	}

	rows, err := d.read.QueryContext(ctx, `
		SELECT preference
		FROM user_preference
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching user preferences: %w", err)
	}
	defer rows.Close()

	var prefs []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning user preference row: %w", err)
		}
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading user preference rows: %w", err)
	}

	return prefs, nil
}
