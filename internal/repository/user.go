package repository

import (
	"context"

	"github.com/spf13/afero"

	"mesa/internal/models"
	"mesa/internal/tablestore"
)

var userSchema = tablestore.Schema[models.User]{
	Name:    "users",
	Columns: []string{"username", "password_hash", "account_type", "profile_picture", "favorite_cuisines", "dietary_preferences"},
	Encode: func(u models.User) []string {
		return []string{
			u.Username,
			u.PasswordHash,
			string(u.AccountType),
			u.ProfilePicture,
			joinList(u.FavoriteCuisines),
			joinList(u.DietaryPreferences),
		}
	},
	Decode: func(row []string) (models.User, error) {
		return models.User{
			Username:           row[0],
			PasswordHash:       row[1],
			AccountType:        models.AccountType(row[2]),
			ProfilePicture:     row[3],
			FavoriteCuisines:   splitList(row[4]),
			DietaryPreferences: splitList(row[5]),
		}, nil
	},
}

// Users is the typed view over the user table.
type Users struct {
	table *tablestore.Table[models.User]
}

// NewUsers creates the user table under dir on the given filesystem.
func NewUsers(fs afero.Fs, dir string) *Users {
	return &Users{table: tablestore.New(fs, dir, userSchema)}
}

// All returns every user row.
func (r *Users) All(ctx context.Context) ([]models.User, error) {
	return r.table.All(ctx)
}

// Get returns the user with the given username (case-sensitive).
func (r *Users) Get(ctx context.Context, username string) (*models.User, error) {
	users, err := r.table.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, models.NewNotFoundError("user", username)
}

// Append adds a new user row via the append fast path.
func (r *Users) Append(ctx context.Context, u models.User) error {
	return r.table.Append(ctx, u)
}

// Replace atomically rewrites the whole user table.
func (r *Users) Replace(ctx context.Context, users []models.User) error {
	return r.table.Replace(ctx, users)
}

// Update applies fn under the table's mutation lock and commits the result.
func (r *Users) Update(ctx context.Context, fn func([]models.User) ([]models.User, error)) ([]models.User, error) {
	return r.table.Update(ctx, fn)
}
