// cmd/natsworker/main.go
//
// Demo worker that feeds the pool from a NATS subject instead of an
// HTTP listener: every message on TASK_SUBJECT becomes one job, and
// each terminal outcome is published to RESULT_SUBJECT.
package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/poolworks/jobpool"
	"github.com/poolworks/jobpool/internal/bus"
	"github.com/poolworks/jobpool/internal/infrastructure/config"
	"github.com/poolworks/jobpool/internal/tasks"
	"github.com/poolworks/jobpool/pkg/schema"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pool, err := jobpool.NewWithConfig[string](jobpool.Config{
		Workers:   cfg.WorkerCount,
		QueueSize: cfg.QueueSize,
		Logger:    logger,
	})
	if err != nil {
		fatal(logger, "create worker pool", err)
	}

	nc, err := bus.Connect(cfg.NATSURL)
	if err != nil {
		fatal(logger, "connect to NATS", err, "nats_url", cfg.NATSURL)
	}
	defer nc.Close()
	logger.Info("connected to NATS", "nats_url", cfg.NATSURL)

	sub, err := nc.QueueSubscribe(cfg.TaskSubject, cfg.WorkerQueue, func(data []byte) {
		handleMessage(data, cfg.ResultSubject, pool, nc, logger)
	})
	if err != nil {
		fatal(logger, "subscribe", err, "subject", cfg.TaskSubject, "queue", cfg.WorkerQueue)
	}
	logger.Info("listening for tasks", "subject", cfg.TaskSubject, "queue", cfg.WorkerQueue, "workers", cfg.WorkerCount)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	if err := sub.Unsubscribe(); err != nil {
		logger.Warn("unsubscribe failed", "error", err)
	}
	pool.Shutdown()
	logger.Info("all workers finished")
}

func handleMessage(data []byte, resultSubject string, pool *jobpool.Pool[string], nc *bus.Client, logger *slog.Logger) {
	var req schema.TaskRequested
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Warn("dropping malformed message", "error", err)
		return
	}

	fn, err := tasks.Build(req.Kind, req.Payload)
	if err != nil {
		logger.Warn("rejected task", "kind", req.Kind, "error", err)
		publishDone(nc, resultSubject, logger, schema.TaskDone{
			Kind:       req.Kind,
			Outcome:    schema.OutcomeFailed,
			Error:      err.Error(),
			HappenedAt: time.Now().Unix(),
		})
		return
	}

	// The job publishes its own outcome, but only learns its id after
	// Submit returns.
	idReady := make(chan uuid.UUID, 1)
	wrapped := func() (string, error) {
		result, err := fn()
		id := <-idReady

		done := schema.TaskDone{
			JobID:      id.String(),
			Kind:       req.Kind,
			HappenedAt: time.Now().Unix(),
		}
		if err != nil {
			done.Outcome = schema.OutcomeFailed
			done.Error = err.Error()
		} else {
			done.Outcome = schema.OutcomeCompleted
			done.Result = result
		}
		publishDone(nc, resultSubject, logger, done)
		return result, err
	}

	id, err := pool.Submit(wrapped)
	if err != nil {
		logger.Warn("submit failed", "kind", req.Kind, "error", err)
		return
	}
	idReady <- id
	logger.Info("task submitted", "job_id", id, "kind", req.Kind)
}

func publishDone(nc *bus.Client, subject string, logger *slog.Logger, done schema.TaskDone) {
	if err := nc.PublishJSON(subject, done); err != nil {
		logger.Warn("failed to publish result", "job_id", done.JobID, "error", err)
	}
}

func fatal(logger *slog.Logger, msg string, err error, args ...any) {
	logger.Error(msg, append([]any{"error", err}, args...)...)
	os.Exit(1)
}
