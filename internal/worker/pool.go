// Package worker provides background processing for render-related jobs.
package worker

import (
	"context"
	"log"
	"sync"

	"github.com/calliope-labs/songforge/internal/core/ports"
)

// Job represents a background loudness analysis task for a finished render.
type Job struct {
	JobID    string
	AudioURL string
}

// Pool manages background workers for async jobs.
type Pool struct {
	repo ports.RenderJobRepository
	jobs chan Job
	wg   sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(repo ports.RenderJobRepository, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{repo: repo, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a loudness analysis job without blocking. It satisfies
// services.LoudnessQueue.
func (p *Pool) Submit(jobID, audioURL string) {
	select {
	case p.jobs <- Job{JobID: jobID, AudioURL: audioURL}:
	default:
		log.Printf("WARN worker: dropping loudness job for %s", jobID)
	}
}

func (p *Pool) processJob(job Job) {
	if job.AudioURL == "" {
		log.Printf("WARN worker: no audio URL for render job %s, skipping analysis", job.JobID)
		return
	}

	loudness, err := AnalyzeAudioFunc(job.AudioURL)
	if err != nil {
		log.Printf("WARN worker: loudness analysis failed for job %s: %v", job.JobID, err)
		return
	}

	if err := p.repo.SetJobLoudness(context.Background(), job.JobID, loudness); err != nil {
		log.Printf("WARN worker: failed to store loudness for job %s: %v", job.JobID, err)
		return
	}
	log.Printf("worker: stored loudness %.3f for render job %s", loudness, job.JobID)
}
