package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/afero"

	"mesa/internal/models"
	"mesa/internal/tablestore"
)

var postSchema = tablestore.Schema[models.Post]{
	Name:    "posts",
	Columns: []string{"post_id", "username", "image_data", "post_text", "timestamp"},
	Encode: func(p models.Post) []string {
		return []string{
			strconv.Itoa(p.ID),
			p.Username,
			p.ImageData,
			p.Text,
			p.Timestamp,
		}
	},
	Decode: func(row []string) (models.Post, error) {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return models.Post{}, fmt.Errorf("bad post_id %q: %w", row[0], err)
		}
		return models.Post{
			ID:        id,
			Username:  row[1],
			ImageData: row[2],
			Text:      row[3],
			Timestamp: row[4],
		}, nil
	},
}

// Posts is the typed view over the post table.
type Posts struct {
	table *tablestore.Table[models.Post]
}

// NewPosts creates the post table under dir on the given filesystem.
func NewPosts(fs afero.Fs, dir string) *Posts {
	return &Posts{table: tablestore.New(fs, dir, postSchema)}
}

// All returns every post row.
func (r *Posts) All(ctx context.Context) ([]models.Post, error) {
	return r.table.All(ctx)
}

// NextID returns the next post ID: one past the current maximum, starting at
// 1 for an empty or absent table.
func (r *Posts) NextID(ctx context.Context) (int, error) {
	posts, err := r.table.All(ctx)
	if err != nil {
		return 0, err
	}
	next := 1
	for _, p := range posts {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next, nil
}

// Append adds a new post row via the append fast path.
func (r *Posts) Append(ctx context.Context, p models.Post) error {
	return r.table.Append(ctx, p)
}

// Replace atomically rewrites the whole post table.
func (r *Posts) Replace(ctx context.Context, posts []models.Post) error {
	return r.table.Replace(ctx, posts)
}

// Update applies fn under the table's mutation lock and commits the result.
func (r *Posts) Update(ctx context.Context, fn func([]models.Post) ([]models.Post, error)) ([]models.Post, error) {
	return r.table.Update(ctx, fn)
}
