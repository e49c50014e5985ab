package viewer

import (
	"context"

	"boardview/internal/boards"
)

// Source is the read-only query contract the viewer loads from.
//
// BoardBySlug returns boards.ErrBoardNotFound (or a nil board) when no
// published board has the slug. ListBoards is expected to return published
// boards newest first, and Categories and Cards ascending by order index.
type Source interface {
	ListBoards(ctx context.Context) ([]boards.Board, error)
	BoardBySlug(ctx context.Context, slug string) (*boards.Board, error)
	Categories(ctx context.Context, boardID string) ([]boards.Category, error)
	Cards(ctx context.Context, boardID string) ([]boards.Card, error)
}
