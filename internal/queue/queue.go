package queue

import (
	"sync"

	"go.uber.org/zap"
)

type Job struct {
	Fn   func() error
	Errc chan error
}

// RequestQueueManager bounds how many requests are handled concurrently;
// everything past the worker count waits in the channel.
type RequestQueueManager struct {
	JobQueue   chan Job
	MaxWorkers int
	wg         sync.WaitGroup
	logger     *zap.Logger
}

func NewRequestQueueManager(queueSize int, maxWorkers int, logger *zap.Logger) *RequestQueueManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	manager := &RequestQueueManager{
		JobQueue:   make(chan Job, queueSize),
		MaxWorkers: maxWorkers,
		logger:     logger,
	}
	manager.startWorkers()
	return manager
}

func (rqm *RequestQueueManager) startWorkers() {
	for i := 0; i < rqm.MaxWorkers; i++ {
		rqm.wg.Add(1)
		go func(workerID int) {
			defer rqm.wg.Done()
			rqm.logger.Debug("queue worker started", zap.Int("worker", workerID))
			for job := range rqm.JobQueue {
				err := job.Fn()
				if job.Errc != nil {
					job.Errc <- err
				}
			}
			rqm.logger.Debug("queue worker stopped", zap.Int("worker", workerID))
		}(i)
	}
}

func (rqm *RequestQueueManager) EnqueueJob(job Job) {
	rqm.JobQueue <- job
}

func (rqm *RequestQueueManager) Shutdown() {
	close(rqm.JobQueue)
	rqm.wg.Wait()
}
