package service

import (
	"context"
	"fmt"

	"mesa/internal/cache"
	"mesa/internal/models"
	"mesa/internal/repository"
)

// GroupService manages dining groups.
type GroupService struct {
	users  *repository.Users
	groups *repository.Groups
}

// NewGroupService creates a new group service.
func NewGroupService(users *repository.Users, groups *repository.Groups) *GroupService {
	return &GroupService{users: users, groups: groups}
}

func recommendCacheKey(groupID int) string {
	return fmt.Sprintf("recommend:group:%d", groupID)
}

// Create makes a new group. The creator is always a member and always listed
// last; duplicate members are dropped keeping first occurrence; every member
// must exist.
func (s *GroupService) Create(ctx context.Context, name, creator string, members []string) (*models.Group, error) {
	if name == "" || creator == "" {
		return nil, models.NewValidationError("group name and creator are required")
	}
	if _, err := s.users.Get(ctx, creator); err != nil {
		return nil, err
	}

	seen := map[string]struct{}{creator: {}}
	final := make([]string, 0, len(members)+1)
	for _, m := range members {
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		if _, err := s.users.Get(ctx, m); err != nil {
			return nil, err
		}
		seen[m] = struct{}{}
		final = append(final, m)
	}
	final = append(final, creator)

	id, err := s.groups.NextID(ctx)
	if err != nil {
		return nil, err
	}
	group := models.Group{ID: id, Name: name, CreatedBy: creator, Members: final}
	if err := s.groups.Append(ctx, group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Get returns a group by id.
func (s *GroupService) Get(ctx context.Context, id int) (*models.Group, error) {
	return s.groups.Get(ctx, id)
}

// ListFor returns every group the user is a member of.
func (s *GroupService) ListFor(ctx context.Context, username string) ([]models.Group, error) {
	all, err := s.groups.All(ctx)
	if err != nil {
		return nil, err
	}
	var mine []models.Group
	for _, g := range all {
		if g.HasMember(username) {
			mine = append(mine, g)
		}
	}
	return mine, nil
}

// Leave removes username from the group. When the last member leaves, the
// group row is deleted. The cached recommendation for the group is dropped
// because the member set changed.
func (s *GroupService) Leave(ctx context.Context, id int, username string) error {
	_, err := s.groups.Update(ctx, func(groups []models.Group) ([]models.Group, error) {
		for i := range groups {
			if groups[i].ID != id {
				continue
			}
			if !groups[i].HasMember(username) {
				return nil, models.NewValidationError("user is not a member of this group")
			}
			kept := make([]string, 0, len(groups[i].Members)-1)
			for _, m := range groups[i].Members {
				if m != username {
					kept = append(kept, m)
				}
			}
			if len(kept) == 0 {
				return append(groups[:i], groups[i+1:]...), nil
			}
			groups[i].Members = kept
			return groups, nil
		}
		return nil, models.NewNotFoundError("group", fmt.Sprintf("%d", id))
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, recommendCacheKey(id))
	return nil
}

// Delete removes a group. Only its creator may delete it.
func (s *GroupService) Delete(ctx context.Context, id int, actor string) error {
	_, err := s.groups.Update(ctx, func(groups []models.Group) ([]models.Group, error) {
		for i, g := range groups {
			if g.ID != id {
				continue
			}
			if g.CreatedBy != actor {
				return nil, models.NewPermissionError("only the creator can delete a group")
			}
			return append(groups[:i], groups[i+1:]...), nil
		}
		return nil, models.NewNotFoundError("group", fmt.Sprintf("%d", id))
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, recommendCacheKey(id))
	return nil
}
