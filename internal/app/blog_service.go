package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"blogilista/internal/model"
	"blogilista/internal/repository"
	"blogilista/internal/stats"
)

// OwnershipPolicy selects which mutations require the token holder to own
// the blog. Any valid token is enough for an operation left unchecked.
type OwnershipPolicy struct {
	Update bool
	Delete bool
}

type BlogService struct {
	blogRepo  BlogStore
	userRepo  UserStore
	auth      *AuthService
	eventLog  EventLog
	publisher EventPublisher
	policy    OwnershipPolicy
}

type CreateBlogInput struct {
	Title  string
	Author string
	URL    string
	Likes  *int
}

// UpdateBlogInput holds the fields to change; nil leaves a field as is.
type UpdateBlogInput struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

func NewBlogService(
	blogRepo BlogStore,
	userRepo UserStore,
	auth *AuthService,
	eventLog EventLog,
	publisher EventPublisher,
	policy OwnershipPolicy,
) *BlogService {
	return &BlogService{
		blogRepo:  blogRepo,
		userRepo:  userRepo,
		auth:      auth,
		eventLog:  eventLog,
		publisher: publisher,
		policy:    policy,
	}
}

func (s *BlogService) Create(ctx context.Context, userID uint, input CreateBlogInput) (*BlogView, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if input.Title == "" || input.URL == "" {
		return nil, fmt.Errorf("%w: title and/or url", ErrMissingField)
	}
	likes := 0
	if input.Likes != nil {
		likes = *input.Likes
	}
	if likes < 0 {
		return nil, ErrInvalidLikes
	}

	blog := &model.Blog{
		Title:  input.Title,
		Author: input.Author,
		URL:    input.URL,
		Likes:  likes,
		UserID: userID,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, model.BlogEventCreated, blog, userID)
	return &BlogView{BlogSummary: summarizeBlog(*blog), User: summarizeUser(owner)}, nil
}

// List returns every blog with its owner attached, in creation order.
func (s *BlogService) List(ctx context.Context) ([]BlogView, error) {
	blogs, err := s.blogRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.joinOwners(ctx, blogs)
}

// Update applies the given fields. A missing blog is not an error: the
// token is still checked and the result is nil.
func (s *BlogService) Update(ctx context.Context, id uint, token string, input UpdateBlogInput) (*BlogView, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := s.gate(ctx, token, blog, s.policy.Update)
	if err != nil {
		return nil, err
	}

	fields, err := updateFields(input)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, nil
	}

	updated, err := s.blogRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	s.publish(ctx, model.BlogEventUpdated, updated, user.ID)
	views, err := s.joinOwners(ctx, []model.Blog{*updated})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete removes the blog. Deleting a missing blog succeeds.
func (s *BlogService) Delete(ctx context.Context, id uint, token string) error {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user, err := s.gate(ctx, token, blog, s.policy.Delete)
	if err != nil {
		return err
	}
	if blog == nil {
		return nil
	}

	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, model.BlogEventDeleted, blog, user.ID)
	return nil
}

func (s *BlogService) Stats(ctx context.Context) (stats.Summary, error) {
	blogs, err := s.blogRepo.List(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(toRecords(blogs)), nil
}

// Events returns the audit trail of one blog, oldest first.
func (s *BlogService) Events(ctx context.Context, blogID uint, limit int) ([]model.BlogEvent, error) {
	if blogID == 0 {
		return nil, ErrInvalidInput
	}
	if s.eventLog == nil {
		return []model.BlogEvent{}, nil
	}
	events, err := s.eventLog.ListByBlogID(ctx, blogID, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.BlogEvent{}
	}
	return events, nil
}

func (s *BlogService) gate(ctx context.Context, token string, blog *model.Blog, requireOwner bool) (*model.User, error) {
	if requireOwner && blog != nil {
		return s.auth.Authorize(ctx, token, blog.UserID)
	}
	return s.auth.Authenticate(ctx, token)
}

func (s *BlogService) joinOwners(ctx context.Context, blogs []model.Blog) ([]BlogView, error) {
	seen := make(map[uint]struct{}, len(blogs))
	ids := make([]uint, 0, len(blogs))
	for _, b := range blogs {
		if _, ok := seen[b.UserID]; !ok {
			seen[b.UserID] = struct{}{}
			ids = append(ids, b.UserID)
		}
	}

	owners, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*model.User, len(owners))
	for i := range owners {
		byID[owners[i].ID] = &owners[i]
	}

	views := make([]BlogView, 0, len(blogs))
	for _, b := range blogs {
		views = append(views, BlogView{BlogSummary: summarizeBlog(b), User: summarizeUser(byID[b.UserID])})
	}
	return views, nil
}

func (s *BlogService) publish(ctx context.Context, kind string, blog *model.Blog, userID uint) {
	if s.publisher == nil {
		return
	}
	event := model.BlogEvent{Kind: kind, BlogID: blog.ID, UserID: userID, Title: blog.Title}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish blog %s event failed: %v", kind, err)
	}
}

func updateFields(input UpdateBlogInput) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, 4)
	if input.Title != nil {
		if *input.Title == "" {
			return nil, fmt.Errorf("%w: title", ErrMissingField)
		}
		fields["title"] = *input.Title
	}
	if input.URL != nil {
		if *input.URL == "" {
			return nil, fmt.Errorf("%w: url", ErrMissingField)
		}
		fields["url"] = *input.URL
	}
	if input.Author != nil {
		fields["author"] = *input.Author
	}
	if input.Likes != nil {
		if *input.Likes < 0 {
			return nil, ErrInvalidLikes
		}
		fields["likes"] = *input.Likes
	}
	return fields, nil
}

func toRecords(blogs []model.Blog) []stats.Record {
	records := make([]stats.Record, 0, len(blogs))
	for _, b := range blogs {
		records = append(records, stats.Record{Title: b.Title, Author: b.Author, Likes: b.Likes})
	}
	return records
}
