// Package sqlite provides a SQLite-backed implementation of the playlist
// repository port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // driver registration
	"github.com/rs/zerolog"

	"github.com/simrec/simrec/internal/core/domain"
	"github.com/simrec/simrec/internal/core/ports"
)

// Adapter implements the playlist repository port for SQLite.
type Adapter struct {
	db  *sql.DB
	log zerolog.Logger
}

var _ ports.PlaylistRepository = (*Adapter)(nil)

// NewAdapter opens the database and runs the schema migration.
func NewAdapter(storagePath string, log zerolog.Logger) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db, log: log.With().Str("component", "sqlite").Logger()}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Save upserts the playlist and rewrites its song links in one transaction.
func (a *Adapter) Save(ctx context.Context, agentID string, p domain.Playlist) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryPlaylist := `
		INSERT INTO playlists (id, agent_id, name, description, genre_focus, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			genre_focus=excluded.genre_focus,
			updated_at=excluded.updated_at;
	`
	if _, err := tx.ExecContext(ctx, queryPlaylist,
		p.ID, agentID, p.Name, p.Description, p.GenreFocus, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to save playlist metadata: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM playlist_songs WHERE playlist_id = ?", p.ID); err != nil {
		return fmt.Errorf("failed to clear old songs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id, position) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for position, songID := range p.SongIDs {
		if _, err := stmt.ExecContext(ctx, p.ID, songID, position); err != nil {
			return fmt.Errorf("failed to link song %s: %w", songID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// GetByID loads one playlist with its songs in order.
func (a *Adapter) GetByID(ctx context.Context, id string) (domain.Playlist, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, name, description, genre_focus, created_at, updated_at
		FROM playlists WHERE id = ?
	`, id)

	p, err := scanPlaylist(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Playlist{}, domain.ErrNotFound
		}
		return domain.Playlist{}, fmt.Errorf("failed to load playlist: %w", err)
	}

	if p.SongIDs, err = a.loadSongIDs(ctx, p.ID); err != nil {
		return domain.Playlist{}, err
	}
	return p, nil
}

// ListByAgent returns the agent's playlists, oldest first.
func (a *Adapter) ListByAgent(ctx context.Context, agentID string) ([]domain.Playlist, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, name, description, genre_focus, created_at, updated_at
		FROM playlists WHERE agent_id = ? ORDER BY created_at ASC
	`, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []domain.Playlist
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlists: %w", err)
	}

	for i := range playlists {
		if playlists[i].SongIDs, err = a.loadSongIDs(ctx, playlists[i].ID); err != nil {
			return nil, err
		}
	}
	return playlists, nil
}

func (a *Adapter) loadSongIDs(ctx context.Context, playlistID string) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT song_id FROM playlist_songs WHERE playlist_id = ? ORDER BY position ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist songs: %w", err)
	}
	defer rows.Close()

	var songIDs []string
	for rows.Next() {
		var songID string
		if err := rows.Scan(&songID); err != nil {
			return nil, fmt.Errorf("failed to scan playlist song: %w", err)
		}
		songIDs = append(songIDs, songID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlist songs: %w", err)
	}
	return songIDs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlaylist(row rowScanner) (domain.Playlist, error) {
	var p domain.Playlist
	var description, genreFocus sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &description, &genreFocus, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Playlist{}, err
	}
	if description.Valid {
		p.Description = description.String
	}
	if genreFocus.Valid {
		p.GenreFocus = genreFocus.String
	}
	return p, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS playlists (
		id TEXT PRIMARY KEY,
		agent_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		genre_focus TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_playlists_agent ON playlists(agent_id);

	CREATE TABLE IF NOT EXISTS playlist_songs (
		playlist_id TEXT NOT NULL,
		song_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (playlist_id, song_id),
		FOREIGN KEY(playlist_id) REFERENCES playlists(id) ON DELETE CASCADE
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
