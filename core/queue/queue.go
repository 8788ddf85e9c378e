package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"agenda-api/core/logger"
	"agenda-api/core/utils"

	"github.com/hibiken/asynq"
)

const TypeBookingConfirmation = "email:booking_confirmation"

// BookingConfirmationPayload carries everything the worker needs to send a
// confirmation email. Delivery is best effort.
type BookingConfirmationPayload struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Day       string `json:"day"`
	SlotStart string `json:"slot_start"`
	Code      string `json:"code"`
}

type Queue struct {
	client *asynq.Client
}

func NewQueue(redisAddr, redisPassword string) *Queue {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword})
	return &Queue{client: client}
}

func (q *Queue) EnqueueBookingConfirmation(ctx context.Context, p BookingConfirmationPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeBookingConfirmation, payload)
	info, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Queue("emails"))
	if err != nil {
		logger.Error("Queue:EnqueueBookingConfirmation", err)
		return err
	}
	logger.Info("Queue:EnqueueBookingConfirmation", "task_id", info.ID, "queue", info.Queue)
	return nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}

// NewWorker builds the asynq server and handler mux. The caller runs it in a
// goroutine next to the HTTP server.
func NewWorker(redisAddr, redisPassword string) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{"emails": 1},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingConfirmation, handleBookingConfirmation)
	return srv, mux
}

func handleBookingConfirmation(ctx context.Context, t *asynq.Task) error {
	var p BookingConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	subject := "Appointment confirmed"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour appointment on %s at %s is confirmed.\nReference code: %s\n",
		p.Name, p.Day, p.SlotStart, p.Code,
	)
	if err := utils.SendEmailTLS([]string{p.Email}, subject, body); err != nil {
		logger.Error("Queue:handleBookingConfirmation", err)
		return err
	}

	logger.Info("Queue:handleBookingConfirmation:Sent", "email", p.Email, "code", p.Code)
	return nil
}
