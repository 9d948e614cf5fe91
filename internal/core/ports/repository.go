package ports

import (
	"context"

	"github.com/simrec/simrec/internal/core/domain"
)

// PlaylistRepository persists agent-created playlists.
type PlaylistRepository interface {
	Save(ctx context.Context, agentID string, p domain.Playlist) error
	GetByID(ctx context.Context, id string) (domain.Playlist, error)
	ListByAgent(ctx context.Context, agentID string) ([]domain.Playlist, error)
}
