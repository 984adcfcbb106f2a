package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogilista/internal/model"
)

type recordingStore struct {
	events []model.BlogEvent
	err    error
}

func (s *recordingStore) Create(ctx context.Context, event *model.BlogEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, *event)
	return nil
}

func TestHandlePersistsEvent(t *testing.T) {
	store := &recordingStore{}
	w := NewBlogEventWorker(nil, store, "blog.events")

	err := w.handle(context.Background(), []byte(`{"id":7,"kind":"created","blog_id":3,"user_id":1,"title":"Chocochili"}`))
	require.NoError(t, err)
	require.Len(t, store.events, 1)
	assert.Zero(t, store.events[0].ID)
	assert.Equal(t, model.BlogEventCreated, store.events[0].Kind)
	assert.Equal(t, uint(3), store.events[0].BlogID)
	assert.Equal(t, "Chocochili", store.events[0].Title)
}

func TestHandleRejectsBadPayloads(t *testing.T) {
	store := &recordingStore{}
	w := NewBlogEventWorker(nil, store, "blog.events")

	assert.Error(t, w.handle(context.Background(), []byte(`not json`)))
	assert.Error(t, w.handle(context.Background(), []byte(`{"kind":"created"}`)))
	assert.Empty(t, store.events)
}

func TestHandleReturnsStoreError(t *testing.T) {
	boom := errors.New("boom")
	w := NewBlogEventWorker(nil, &recordingStore{err: boom}, "blog.events")

	err := w.handle(context.Background(), []byte(`{"kind":"deleted","blog_id":3}`))
	assert.ErrorIs(t, err, boom)
}

func TestCloseWithoutStart(t *testing.T) {
	w := NewBlogEventWorker(nil, &recordingStore{}, "blog.events")
	w.Close()
}
