package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogilista/internal/model"
	"blogilista/internal/platform/sqlite"
	"blogilista/internal/repository"
)

const testSecret = "test-secret"

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newMemoryDenylist() *memoryDenylist {
	return &memoryDenylist{revoked: map[string]time.Duration{}}
}

func (d *memoryDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = ttl
	return nil
}

func (d *memoryDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[tokenID]
	return ok, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.BlogEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event model.BlogEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Kind)
	}
	return out
}

type fixture struct {
	users     *UserService
	blogs     *BlogService
	auth      *AuthService
	denylist  *memoryDenylist
	publisher *recordingPublisher
	eventRepo *repository.EventRepository
}

func newFixture(t *testing.T, policy OwnershipPolicy) *fixture {
	t.Helper()
	db, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	eventRepo := repository.NewEventRepository(db)
	denylist := newMemoryDenylist()
	publisher := &recordingPublisher{}
	auth := NewAuthService(userRepo, denylist, testSecret, time.Hour)

	return &fixture{
		users:     NewUserService(userRepo, blogRepo, bcrypt.MinCost),
		blogs:     NewBlogService(blogRepo, userRepo, auth, eventRepo, publisher, policy),
		auth:      auth,
		denylist:  denylist,
		publisher: publisher,
		eventRepo: eventRepo,
	}
}

// register creates a user and returns it with a fresh token.
func (f *fixture) register(t *testing.T, username, password string) (*UserView, string) {
	t.Helper()
	ctx := context.Background()
	user, err := f.users.Create(ctx, CreateUserInput{Username: username, Name: username, Password: password})
	require.NoError(t, err)
	result, err := f.auth.Login(ctx, LoginInput{Username: username, Password: password})
	require.NoError(t, err)
	return user, result.Token
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
