package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"fittrack/internal/events"
	"fittrack/internal/model"
	"fittrack/internal/repository"
)

// ActivityLogWorker consumes activity events and writes one audit row per
// event. The API never waits on it; a backlog here only delays the trail.
type ActivityLogWorker struct {
	conn      *amqp.Connection
	repo      *repository.ActivityLogRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewActivityLogWorker(conn *amqp.Connection, repo *repository.ActivityLogRepository, queueName string) *ActivityLogWorker {
	return &ActivityLogWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *ActivityLogWorker) Start(ctx context.Context) error {
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

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
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

				entry, err := logEntryFromEvent(d.Body)
				if err != nil {
					log.Printf("worker decode activity event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.repo.Create(entry); err != nil {
					log.Printf("worker persist activity log failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ActivityLogWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func logEntryFromEvent(body []byte) (*model.ActivityLog, error) {
	var event events.ActivityCreated
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, err
	}
	if event.ActivityID == 0 || event.UserID == 0 {
		return nil, fmt.Errorf("activity event missing identifiers")
	}

	action := event.Action
	if action == "" {
		action = events.ActionActivityCreated
	}
	return &model.ActivityLog{
		Action:          action,
		UserID:          event.UserID,
		ActivityID:      event.ActivityID,
		DurationMinutes: event.DurationMinutes,
	}, nil
}
