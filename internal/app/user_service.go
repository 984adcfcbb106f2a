package app

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"blogilista/internal/model"
	"blogilista/internal/repository"
)

const minCredentialLength = 3

type UserService struct {
	userRepo   UserStore
	blogRepo   BlogStore
	bcryptCost int
}

type CreateUserInput struct {
	Username string
	Name     string
	Password string
}

func NewUserService(userRepo UserStore, blogRepo BlogStore, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		userRepo:   userRepo,
		blogRepo:   blogRepo,
		bcryptCost: bcryptCost,
	}
}

// Create registers a user. The lookup gives a friendly error for the common
// case; the unique index catches a concurrent registration of the same name.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserView, error) {
	if input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and/or password", ErrMissingField)
	}
	if utf8.RuneCountInString(input.Username) < minCredentialLength || utf8.RuneCountInString(input.Password) < minCredentialLength {
		return nil, fmt.Errorf("%w: username and password must be %d characters or longer", ErrTooShort, minCredentialLength)
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return &UserView{UserSummary: *summarizeUser(user), Blogs: []BlogSummary{}}, nil
}

// List returns every user with their blogs attached, in creation order.
func (s *UserService) List(ctx context.Context) ([]UserView, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	blogs, err := s.blogRepo.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byOwner := make(map[uint][]BlogSummary, len(users))
	for _, b := range blogs {
		byOwner[b.UserID] = append(byOwner[b.UserID], summarizeBlog(b))
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		owned := byOwner[users[i].ID]
		if owned == nil {
			owned = []BlogSummary{}
		}
		views = append(views, UserView{UserSummary: *summarizeUser(&users[i]), Blogs: owned})
	}
	return views, nil
}
