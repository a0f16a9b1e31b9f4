package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/afero"

	"mesa/internal/models"
	"mesa/internal/tablestore"
)

var groupSchema = tablestore.Schema[models.Group]{
	Name:    "groups",
	Columns: []string{"group_id", "group_name", "created_by", "members"},
	Encode: func(g models.Group) []string {
		return []string{
			strconv.Itoa(g.ID),
			g.Name,
			g.CreatedBy,
			joinList(g.Members),
		}
	},
	Decode: func(row []string) (models.Group, error) {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return models.Group{}, fmt.Errorf("bad group_id %q: %w", row[0], err)
		}
		return models.Group{
			ID:        id,
			Name:      row[1],
			CreatedBy: row[2],
			Members:   splitList(row[3]),
		}, nil
	},
}

// Groups is the typed view over the group table.
type Groups struct {
	table *tablestore.Table[models.Group]
}

// NewGroups creates the group table under dir on the given filesystem.
func NewGroups(fs afero.Fs, dir string) *Groups {
	return &Groups{table: tablestore.New(fs, dir, groupSchema)}
}

// All returns every group row.
func (r *Groups) All(ctx context.Context) ([]models.Group, error) {
	return r.table.All(ctx)
}

// Get returns the group with the given ID.
func (r *Groups) Get(ctx context.Context, id int) (*models.Group, error) {
	groups, err := r.table.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i], nil
		}
	}
	return nil, models.NewNotFoundError("group", id)
}

// NextID returns one past the current maximum group ID, starting at 1.
func (r *Groups) NextID(ctx context.Context) (int, error) {
	groups, err := r.table.All(ctx)
	if err != nil {
		return 0, err
	}
	next := 1
	for _, g := range groups {
		if g.ID >= next {
			next = g.ID + 1
		}
	}
	return next, nil
}

// Append adds a new group row via the append fast path.
func (r *Groups) Append(ctx context.Context, g models.Group) error {
	return r.table.Append(ctx, g)
}

// Replace atomically rewrites the whole group table.
func (r *Groups) Replace(ctx context.Context, groups []models.Group) error {
	return r.table.Replace(ctx, groups)
}

// Update applies fn under the table's mutation lock and commits the result.
func (r *Groups) Update(ctx context.Context, fn func([]models.Group) ([]models.Group, error)) ([]models.Group, error) {
	return r.table.Update(ctx, fn)
}
