package tasks

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// DiscoveryRunner executes one discovery run to completion.
type DiscoveryRunner interface {
	Run(ctx context.Context, requestID uuid.UUID) error
}

// Worker consumes queued tasks and drives them through the services.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	discovery DiscoveryRunner
}

// NewWorker builds a queue consumer bound to one queue.
func NewWorker(redisURL, queue string, concurrency int, discovery DiscoveryRunner) (*Worker, error) {
	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}
	if queue == "" {
		queue = "default"
	}
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	w := &Worker{
		server:    server,
		mux:       asynq.NewServeMux(),
		discovery: discovery,
	}
	w.mux.HandleFunc(TypeDiscoveryRun, w.handleDiscoveryRun)
	return w, nil
}

func (w *Worker) handleDiscoveryRun(ctx context.Context, task *asynq.Task) error {
	requestID, err := ParseDiscoveryPayload(task)
	if err != nil {
		// A payload that cannot be decoded will never succeed.
		return asynq.SkipRetry
	}
	return w.discovery.Run(ctx, requestID)
}

// Run blocks processing tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		log.Printf("task worker stopped: %v", err)
		return err
	}
	return nil
}
