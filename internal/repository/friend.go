package repository

import (
	"context"

	"github.com/spf13/afero"

	"mesa/internal/models"
	"mesa/internal/tablestore"
)

var friendSchema = tablestore.Schema[models.FriendEdge]{
	Name:    "friends",
	Columns: []string{"username", "friends"},
	Encode: func(e models.FriendEdge) []string {
		return []string{e.Username, joinList(e.Friends)}
	},
	Decode: func(row []string) (models.FriendEdge, error) {
		return models.FriendEdge{
			Username: row[0],
			Friends:  splitList(row[1]),
		}, nil
	},
}

// Friends is the typed view over the friend-edge table.
type Friends struct {
	table *tablestore.Table[models.FriendEdge]
}

// NewFriends creates the friend table under dir on the given filesystem.
func NewFriends(fs afero.Fs, dir string) *Friends {
	return &Friends{table: tablestore.New(fs, dir, friendSchema)}
}

// All returns every friend-edge row.
func (r *Friends) All(ctx context.Context) ([]models.FriendEdge, error) {
	return r.table.All(ctx)
}

// Get returns the edge row for username. A user without an edge row has an
// empty friend list, which is not an error.
func (r *Friends) Get(ctx context.Context, username string) (models.FriendEdge, error) {
	edges, err := r.table.All(ctx)
	if err != nil {
		return models.FriendEdge{}, err
	}
	for _, e := range edges {
		if e.Username == username {
			return e, nil
		}
	}
	return models.FriendEdge{Username: username}, nil
}

// Replace atomically rewrites the whole friend table.
func (r *Friends) Replace(ctx context.Context, edges []models.FriendEdge) error {
	return r.table.Replace(ctx, edges)
}

// Update applies fn under the table's mutation lock and commits the result.
func (r *Friends) Update(ctx context.Context, fn func([]models.FriendEdge) ([]models.FriendEdge, error)) ([]models.FriendEdge, error) {
	return r.table.Update(ctx, fn)
}
