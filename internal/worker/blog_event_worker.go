package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"blogilista/internal/model"
	"blogilista/internal/platform/rabbitmq"
)

type EventStore interface {
	Create(ctx context.Context, event *model.BlogEvent) error
}

// BlogEventWorker drains the blog event queue into the audit table.
type BlogEventWorker struct {
	conn      *amqp.Connection
	store     EventStore
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewBlogEventWorker(conn *amqp.Connection, store EventStore, queueName string) *BlogEventWorker {
	return &BlogEventWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
	}
}

func (w *BlogEventWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(workerCtx, d.Body); err != nil {
					log.Printf("worker %v", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *BlogEventWorker) handle(ctx context.Context, body []byte) error {
	var event model.BlogEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode blog event failed: %w", err)
	}
	if event.BlogID == 0 || event.Kind == "" {
		return fmt.Errorf("blog event missing blog id or kind")
	}
	// the audit table assigns its own IDs
	event.ID = 0
	return w.store.Create(ctx, &event)
}

func (w *BlogEventWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
