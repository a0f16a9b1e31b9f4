// Package seed provides helpers to create demo data for development and
// testing.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	"mesa/internal/models"
	"mesa/internal/recommend"
	"mesa/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

// Factory builds domain entities and persists them to the flat tables.
type Factory struct {
	users   *repository.Users
	friends *repository.Friends
	groups  *repository.Groups
	rng     *rand.Rand
}

// NewFactory creates a factory over the given repositories. A fixed seed
// makes repeated runs reproducible.
func NewFactory(users *repository.Users, friends *repository.Friends, groups *repository.Groups, seed int64) *Factory {
	gofakeit.Seed(seed)
	return &Factory{
		users:   users,
		friends: friends,
		groups:  groups,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// BuildUser constructs a sample user with a random ordered favorites list
// and random dietary preferences. Optional overrides run before persisting.
func (f *Factory) BuildUser(overrides ...func(*models.User)) models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	seqLen := 1 + f.rng.Intn(recommend.MaxSeqLength)
	perm := f.rng.Perm(len(recommend.Catalog))
	favorites := make([]string, seqLen)
	for i := 0; i < seqLen; i++ {
		favorites[i] = recommend.Catalog[perm[i]]
	}

	dietaryPool := []string{"vegetarian", "vegan", "gluten-free", "halal", "kosher", "lactose-free"}
	var dietary []string
	for _, d := range dietaryPool {
		if f.rng.Intn(4) == 0 {
			dietary = append(dietary, d)
		}
	}

	user := models.User{
		Username:           gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		PasswordHash:       string(hash),
		AccountType:        models.AccountTypeUser,
		ProfilePicture:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		FavoriteCuisines:   favorites,
		DietaryPreferences: dietary,
	}
	for _, override := range overrides {
		override(&user)
	}
	return user
}

// CreateUsers builds and persists n users in a single table rewrite.
func (f *Factory) CreateUsers(ctx context.Context, n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, f.BuildUser())
	}
	if err := f.users.Replace(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateFriendMesh gives every user a random handful of friends.
func (f *Factory) CreateFriendMesh(ctx context.Context, users []models.User) error {
	edges := make([]models.FriendEdge, 0, len(users))
	for i, u := range users {
		count := f.rng.Intn(4)
		var friends []string
		for _, j := range f.rng.Perm(len(users)) {
			if j == i || len(friends) >= count {
				continue
			}
			friends = append(friends, users[j].Username)
		}
		if len(friends) > 0 {
			edges = append(edges, models.FriendEdge{Username: u.Username, Friends: friends})
		}
	}
	return f.friends.Replace(ctx, edges)
}

// CreateGroups builds n groups of 2-5 random members each.
func (f *Factory) CreateGroups(ctx context.Context, users []models.User, n int) error {
	groups := make([]models.Group, 0, n)
	for g := 0; g < n; g++ {
		size := 2 + f.rng.Intn(4)
		if size > len(users) {
			size = len(users)
		}
		perm := f.rng.Perm(len(users))
		members := make([]string, 0, size)
		for i := 0; i < size; i++ {
			members = append(members, users[perm[i]].Username)
		}
		groups = append(groups, models.Group{
			ID:        g + 1,
			Name:      fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), "dinner club"),
			CreatedBy: members[len(members)-1],
			Members:   members,
		})
	}
	return f.groups.Replace(ctx, groups)
}
