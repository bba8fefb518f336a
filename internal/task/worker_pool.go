package task

import (
	"context"
	"log/slog"
	"sync"
)

// WorkerPool manages a fixed number of worker goroutines that process tasks
// from a queue. Capping the worker count caps how many batch runs execute
// concurrently.
type WorkerPool struct {
	queue       *Queue
	workerCount int
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *slog.Logger
}

// NewWorkerPool creates a worker pool consuming from queue. A worker count
// below one falls back to a single worker.
func NewWorkerPool(queue *Queue, workerCount int, logger *slog.Logger) *WorkerPool {
	if workerCount < 1 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", workerCount,
			"default_count", 1)
		workerCount = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		queue:       queue,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// Start launches the worker goroutines.
func (p *WorkerPool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Info("worker pool started", "workers", p.workerCount)
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (p *WorkerPool) Stop() {
	p.queue.Close()
	p.wg.Wait()
	p.cancel()
	p.logger.Info("worker pool stopped")
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	log := p.logger.With("worker", id)
	for t := range p.queue.Channel() {
		log.Info("task started", "task_id", t.ID(), "task_type", t.Type())
		if err := t.Execute(p.ctx); err != nil {
			log.Error("task execution failed",
				"task_id", t.ID(),
				"task_type", t.Type(),
				"error", err)
			continue
		}
		log.Info("task finished", "task_id", t.ID(), "task_type", t.Type())
	}
}
