package service

import (
	"context"
	"sort"
	"time"

	"mesa/internal/models"
	"mesa/internal/repository"
)

// PostService manages the post feed.
type PostService struct {
	users *repository.Users
	posts *repository.Posts
	now   func() time.Time
}

// NewPostService creates a new post service.
func NewPostService(users *repository.Users, posts *repository.Posts) *PostService {
	return &PostService{users: users, posts: posts, now: time.Now}
}

// Create adds a post for username, assigning the next id and the current
// timestamp, and appends it to the table.
func (s *PostService) Create(ctx context.Context, username, text, imageData string) (*models.Post, error) {
	if username == "" {
		return nil, models.NewValidationError("username is required")
	}
	if text == "" && imageData == "" {
		return nil, models.NewValidationError("a post needs text or an image")
	}
	if _, err := s.users.Get(ctx, username); err != nil {
		return nil, err
	}

	id, err := s.posts.NextID(ctx)
	if err != nil {
		return nil, err
	}
	post := models.Post{
		ID:        id,
		Username:  username,
		ImageData: imageData,
		Text:      text,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.posts.Append(ctx, post); err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns every post, newest first. RFC 3339 timestamps sort
// lexicographically, so the stored strings are compared as-is; ties break on
// id descending to keep the order stable.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Timestamp != posts[j].Timestamp {
			return posts[i].Timestamp > posts[j].Timestamp
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

// ListFor returns username's posts, newest first.
func (s *PostService) ListFor(ctx context.Context, username string) ([]models.Post, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var mine []models.Post
	for _, p := range all {
		if p.Username == username {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, id int, actor string) error {
	_, err := s.posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		for i, p := range posts {
			if p.ID != id {
				continue
			}
			if p.Username != actor {
				return nil, models.NewPermissionError("only the author can delete a post")
			}
			return append(posts[:i], posts[i+1:]...), nil
		}
		return nil, models.NewNotFoundError("post", "")
	})
	return err
}
