package seed

import (
	"context"
	"fmt"
	"time"

	"mesa/internal/bootstrap"
	"mesa/internal/models"
	"mesa/internal/observability"

	"github.com/brianvoe/gofakeit/v6"
)

// Options configures the seeder.
type Options struct {
	NumUsers  int
	NumPosts  int
	NumGroups int
	Seed      int64
}

// Seed populates the flat tables with demo users, a friend mesh, posts, and
// groups. Existing table contents are replaced.
func Seed(ctx context.Context, rt *bootstrap.Runtime, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 80
	}
	if opts.NumGroups <= 0 {
		opts.NumGroups = 8
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	factory := NewFactory(rt.Users, rt.Friends, rt.Groups, opts.Seed)

	users, err := factory.CreateUsers(ctx, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	if err := factory.CreateFriendMesh(ctx, users); err != nil {
		return fmt.Errorf("seeding friends: %w", err)
	}
	if err := seedPosts(ctx, rt, factory, users, opts.NumPosts); err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}
	if err := factory.CreateGroups(ctx, users, opts.NumGroups); err != nil {
		return fmt.Errorf("seeding groups: %w", err)
	}

	observability.GlobalLogger.Info("seeding complete",
		"users", opts.NumUsers,
		"posts", opts.NumPosts,
		"groups", opts.NumGroups,
	)
	return nil
}

func seedPosts(ctx context.Context, rt *bootstrap.Runtime, f *Factory, users []models.User, n int) error {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[f.rng.Intn(len(users))]
		when := time.Now().Add(-time.Duration(f.rng.Intn(90*24)) * time.Hour)
		posts = append(posts, models.Post{
			ID:        i + 1,
			Username:  author.Username,
			Text:      gofakeit.Sentence(8 + f.rng.Intn(10)),
			Timestamp: when.UTC().Format(time.RFC3339),
		})
	}
	return rt.Posts.Replace(ctx, posts)
}
