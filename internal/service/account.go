// Package service implements the business operations over the flat social
// tables. Services never hold table contents across two operations; every
// read is a fresh snapshot from the repository layer.
package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mesa/internal/models"
	"mesa/internal/repository"
	"mesa/internal/validation"
)

// AccountService owns registration, authentication, profile updates, and the
// username rename cascade across the user, post, friend, and group tables.
type AccountService struct {
	users   *repository.Users
	posts   *repository.Posts
	friends *repository.Friends
	groups  *repository.Groups
}

// NewAccountService creates a new account service.
func NewAccountService(users *repository.Users, posts *repository.Posts, friends *repository.Friends, groups *repository.Groups) *AccountService {
	return &AccountService{users: users, posts: posts, friends: friends, groups: groups}
}

// Register creates a new account. The username must not already exist; the
// new row is committed via the append fast path.
func (s *AccountService) Register(ctx context.Context, username, password, accountType string) (*models.User, error) {
	if username == "" || password == "" || accountType == "" {
		return nil, models.NewValidationError("username, password, and account_type are required")
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateAccountType(accountType); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range existing {
		if u.Username == username {
			return nil, models.NewConflictError("username already exists")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		AccountType:  models.AccountType(accountType),
	}
	if err := s.users.Append(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies the username/password pair and returns the account.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("username and password are required")
	}
	user, err := s.users.Get(ctx, username)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError("invalid username or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, models.NewUnauthorizedError("invalid username or password")
	}
	return user, nil
}

// ProfileUpdate describes an UpdateProfile request. Nil pointer fields are
// left unchanged; a non-empty NewUsername triggers the rename cascade.
type ProfileUpdate struct {
	Username           string
	NewUsername        string
	NewPassword        string
	ProfilePicture     *string
	FavoriteCuisines   *[]string
	DietaryPreferences *[]string
}

// UpdateProfile updates the user row and, on a rename, cascades the new
// username through the post, friend, and group tables.
//
// All validations run and all four replacement tables are staged in memory
// before the first commit. Each table then commits independently, in the
// fixed order users, posts, friends, groups; an I/O failure between commits
// leaves earlier tables committed and later ones untouched.
func (s *AccountService) UpdateProfile(ctx context.Context, p ProfileUpdate) error {
	if p.Username == "" {
		return models.NewValidationError("username is required")
	}
	renaming := p.NewUsername != "" && p.NewUsername != p.Username
	if renaming {
		if err := validation.ValidateUsername(p.NewUsername); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	if p.NewPassword != "" {
		if err := validation.ValidatePassword(p.NewPassword); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	if p.FavoriteCuisines != nil {
		if err := validation.ValidateCuisineList(*p.FavoriteCuisines); err != nil {
			return models.NewValidationError(err.Error())
		}
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return err
	}

	target := -1
	for i, u := range users {
		if u.Username == p.Username {
			target = i
		}
		if renaming && u.Username == p.NewUsername {
			return models.NewConflictError("username already exists")
		}
	}
	if target < 0 {
		return models.NewNotFoundError("user", p.Username)
	}

	// Stage the user table.
	if renaming {
		users[target].Username = p.NewUsername
	}
	if p.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return models.NewInternalError(err)
		}
		users[target].PasswordHash = string(hash)
	}
	if p.ProfilePicture != nil {
		users[target].ProfilePicture = *p.ProfilePicture
	}
	if p.FavoriteCuisines != nil {
		users[target].FavoriteCuisines = *p.FavoriteCuisines
	}
	if p.DietaryPreferences != nil {
		users[target].DietaryPreferences = *p.DietaryPreferences
	}

	// Stage the dependent tables before the first commit so a rename never
	// starts writing with an unread table still able to fail.
	var posts []models.Post
	var friends []models.FriendEdge
	var groups []models.Group
	if renaming {
		if posts, err = s.posts.All(ctx); err != nil {
			return err
		}
		if friends, err = s.friends.All(ctx); err != nil {
			return err
		}
		if groups, err = s.groups.All(ctx); err != nil {
			return err
		}
		for i := range posts {
			if posts[i].Username == p.Username {
				posts[i].Username = p.NewUsername
			}
		}
		for i := range friends {
			if friends[i].Username == p.Username {
				friends[i].Username = p.NewUsername
			}
			for j, f := range friends[i].Friends {
				if f == p.Username {
					friends[i].Friends[j] = p.NewUsername
				}
			}
		}
		for i := range groups {
			if groups[i].CreatedBy == p.Username {
				groups[i].CreatedBy = p.NewUsername
			}
			for j, m := range groups[i].Members {
				if m == p.Username {
					groups[i].Members[j] = p.NewUsername
				}
			}
		}
	}

	// Commit, one atomic rewrite per table, fixed order.
	if err := s.users.Replace(ctx, users); err != nil {
		return err
	}
	if renaming {
		if err := s.posts.Replace(ctx, posts); err != nil {
			return err
		}
		if err := s.friends.Replace(ctx, friends); err != nil {
			return err
		}
		if err := s.groups.Replace(ctx, groups); err != nil {
			return err
		}
	}
	return nil
}

// UpdateFavorites replaces the user's ordered favorite-cuisine list.
func (s *AccountService) UpdateFavorites(ctx context.Context, username string, cuisines []string) error {
	if err := validation.ValidateCuisineList(cuisines); err != nil {
		return models.NewValidationError(err.Error())
	}
	return s.updateUser(ctx, username, func(u *models.User) {
		u.FavoriteCuisines = cuisines
	})
}

// UpdateDietary replaces the user's dietary preference set.
func (s *AccountService) UpdateDietary(ctx context.Context, username string, prefs []string) error {
	if err := validation.ValidateCuisineList(prefs); err != nil {
		return models.NewValidationError(err.Error())
	}
	return s.updateUser(ctx, username, func(u *models.User) {
		u.DietaryPreferences = prefs
	})
}

func (s *AccountService) updateUser(ctx context.Context, username string, apply func(*models.User)) error {
	if username == "" {
		return models.NewValidationError("username is required")
	}
	_, err := s.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].Username == username {
				apply(&users[i])
				return users, nil
			}
		}
		return nil, models.NewNotFoundError("user", username)
	})
	return err
}

// ListUsernames returns all usernames. When personalOnly is set, company
// accounts are excluded.
func (s *AccountService) ListUsernames(ctx context.Context, personalOnly bool) ([]string, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		if personalOnly && u.AccountType != models.AccountTypeUser {
			continue
		}
		names = append(names, u.Username)
	}
	return names, nil
}

// FilterByDietary returns users whose dietary preferences intersect the
// given set, compared case-insensitively.
func (s *AccountService) FilterByDietary(ctx context.Context, prefs []string) ([]models.User, error) {
	wanted := make(map[string]struct{}, len(prefs))
	for _, p := range prefs {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			wanted[p] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return nil, models.NewValidationError("at least one preference is required")
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}
	var matched []models.User
	for _, u := range users {
		for _, p := range u.DietaryPreferences {
			if _, ok := wanted[strings.ToLower(strings.TrimSpace(p))]; ok {
				matched = append(matched, u)
				break
			}
		}
	}
	return matched, nil
}

// GroupDietary returns the union of the members' dietary preferences.
func (s *AccountService) GroupDietary(ctx context.Context, members []string) ([]string, error) {
	if len(members) == 0 {
		return nil, nil
	}
	inGroup := make(map[string]struct{}, len(members))
	for _, m := range members {
		inGroup[m] = struct{}{}
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var prefs []string
	for _, u := range users {
		if _, ok := inGroup[u.Username]; !ok {
			continue
		}
		for _, p := range u.DietaryPreferences {
			if _, dup := seen[p]; !dup {
				seen[p] = struct{}{}
				prefs = append(prefs, p)
			}
		}
	}
	return prefs, nil
}
