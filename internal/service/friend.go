package service

import (
	"context"
	"strings"

	"mesa/internal/models"
	"mesa/internal/repository"
)

// FriendService manages the one-directional friend lists.
type FriendService struct {
	users   *repository.Users
	friends *repository.Friends
}

// NewFriendService creates a new friend service.
func NewFriendService(users *repository.Users, friends *repository.Friends) *FriendService {
	return &FriendService{users: users, friends: friends}
}

// List returns the friend list for a user. A user with no row has an empty
// list, not an error.
func (s *FriendService) List(ctx context.Context, username string) ([]string, error) {
	if username == "" {
		return nil, models.NewValidationError("username is required")
	}
	edge, err := s.friends.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return edge.Friends, nil
}

// Add appends friend to username's list and returns the updated list. The
// edge row is created lazily; duplicates are compared case-insensitively and
// adding an existing friend is a no-op.
func (s *FriendService) Add(ctx context.Context, username, friend string) ([]string, error) {
	if username == "" || friend == "" {
		return nil, models.NewValidationError("username and friend are required")
	}
	if strings.EqualFold(username, friend) {
		return nil, models.NewValidationError("cannot add yourself as a friend")
	}
	if _, err := s.users.Get(ctx, friend); err != nil {
		return nil, err
	}

	var updated []string
	_, err := s.friends.Update(ctx, func(edges []models.FriendEdge) ([]models.FriendEdge, error) {
		for i := range edges {
			if edges[i].Username != username {
				continue
			}
			if !edges[i].HasFriend(friend) {
				edges[i].Friends = append(edges[i].Friends, friend)
			}
			updated = edges[i].Friends
			return edges, nil
		}
		edges = append(edges, models.FriendEdge{Username: username, Friends: []string{friend}})
		updated = edges[len(edges)-1].Friends
		return edges, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes friend from username's list and returns the updated list.
// Removing someone who is not on the list is a not-found error.
func (s *FriendService) Remove(ctx context.Context, username, friend string) ([]string, error) {
	if username == "" || friend == "" {
		return nil, models.NewValidationError("username and friend are required")
	}

	var updated []string
	_, err := s.friends.Update(ctx, func(edges []models.FriendEdge) ([]models.FriendEdge, error) {
		for i := range edges {
			if edges[i].Username != username {
				continue
			}
			if !edges[i].HasFriend(friend) {
				return nil, models.NewNotFoundError("friend", friend)
			}
			edges[i].Friends = edges[i].WithoutFriend(friend)
			updated = edges[i].Friends
			return edges, nil
		}
		return nil, models.NewNotFoundError("friend", friend)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
