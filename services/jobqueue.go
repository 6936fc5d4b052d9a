package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"cadenza/types"
	"cadenza/websocket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobQueue interface defines the methods for managing conversion jobs
type JobQueue interface {
	Start()
	AddJob(inputs []string, bitrate types.Bitrate, outputDir string) *types.ConversionJob
	GetJob(id string) (*types.ConversionJob, bool)
	GetAllJobs() []*types.ConversionJob
	CancelJob(id string) bool
}

// jobQueue manages conversion jobs
type jobQueue struct {
	jobs       map[string]*types.ConversionJob
	queue      chan *types.ConversionJob
	mu         sync.RWMutex
	maxWorkers int
	converter  Converter
	files      FileService
	hub        websocket.Hub
	log        *zap.Logger
}

// NewJobQueue creates a new job queue. maxWorkers controls how many
// batches run at once; files inside a batch are always sequential.
func NewJobQueue(maxWorkers int, converter Converter, files FileService, hub websocket.Hub, log *zap.Logger) JobQueue {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &jobQueue{
		jobs:       make(map[string]*types.ConversionJob),
		queue:      make(chan *types.ConversionJob, 100), // buffer for 100 jobs
		maxWorkers: maxWorkers,
		converter:  converter,
		files:      files,
		hub:        hub,
		log:        log,
	}
}

// AddJob adds a new conversion job to the queue and returns a snapshot
// of it
func (jq *jobQueue) AddJob(inputs []string, bitrate types.Bitrate, outputDir string) *types.ConversionJob {
	job := &types.ConversionJob{
		ID:        uuid.New().String(),
		Status:    types.JobStatusQueued,
		Inputs:    inputs,
		Bitrate:   bitrate,
		OutputDir: outputDir,
		Progress:  0,
		Total:     len(inputs),
		CreatedAt: time.Now(),
	}

	jq.mu.Lock()
	jq.jobs[job.ID] = job
	snapshot := cloneJob(job)
	jq.mu.Unlock()

	// Enqueue outside the lock so a full queue never blocks readers
	jq.queue <- job

	return snapshot
}

// cloneJob copies a job so callers can read and marshal it while the
// worker keeps mutating the stored one. Callers must hold jq.mu.
func cloneJob(job *types.ConversionJob) *types.ConversionJob {
	clone := *job
	clone.Inputs = append([]string(nil), job.Inputs...)
	clone.Results = append([]types.ConversionResult(nil), job.Results...)
	return &clone
}

// GetJob retrieves a snapshot of a job by ID
func (jq *jobQueue) GetJob(id string) (*types.ConversionJob, bool) {
	jq.mu.RLock()
	defer jq.mu.RUnlock()
	job, exists := jq.jobs[id]
	if !exists {
		return nil, false
	}
	return cloneJob(job), true
}

// GetAllJobs returns snapshots of all jobs
func (jq *jobQueue) GetAllJobs() []*types.ConversionJob {
	jq.mu.RLock()
	defer jq.mu.RUnlock()

	jobs := make([]*types.ConversionJob, 0, len(jq.jobs))
	for _, job := range jq.jobs {
		jobs = append(jobs, cloneJob(job))
	}
	return jobs
}

// CancelJob cancels a queued job. Jobs already converting keep running;
// the worker skips cancelled jobs when it reaches them.
func (jq *jobQueue) CancelJob(id string) bool {
	jq.mu.Lock()
	defer jq.mu.Unlock()

	job, exists := jq.jobs[id]
	if !exists {
		return false
	}

	if job.Status == types.JobStatusQueued {
		job.Status = types.JobStatusCancelled
		now := time.Now()
		job.CompletedAt = &now
		return true
	}

	return false
}

// setJobTotal resets progress once the input list has been expanded
func (jq *jobQueue) setJobTotal(id string, total int) {
	jq.mu.Lock()
	defer jq.mu.Unlock()

	if job, exists := jq.jobs[id]; exists {
		job.Progress = 0
		job.Total = total
	}
}

// recordResult appends a per-file result, bumps progress, and broadcasts
// the update to any WebSocket listeners.
func (jq *jobQueue) recordResult(id string, index, total int, result types.ConversionResult) {
	jq.mu.Lock()
	defer jq.mu.Unlock()

	job, exists := jq.jobs[id]
	if !exists {
		return
	}

	job.Progress = index
	job.Total = total
	job.Results = append(job.Results, result)

	if jq.hub != nil && total > 0 {
		progressPercent := float64(index) / float64(total) * 100
		currentFile := filepath.Base(result.InputPath)

		message := fmt.Sprintf("Converted %s", currentFile)
		msgType := "progress"
		if !result.Succeeded() {
			message = fmt.Sprintf("Failed %s: %s", currentFile, result.Error)
		}

		jq.hub.BroadcastProgress(id, msgType, string(job.Status), currentFile,
			result.OutputPath, message, progressPercent)
	}
}

// setJobStatus updates job status and broadcasts the transition
func (jq *jobQueue) setJobStatus(id string, status types.JobStatus, errorMsg string) {
	jq.mu.Lock()
	defer jq.mu.Unlock()

	job, exists := jq.jobs[id]
	if !exists {
		return
	}

	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}

	now := time.Now()
	if status == types.JobStatusProcessing && job.StartedAt == nil {
		job.StartedAt = &now
	} else if status == types.JobStatusCompleted || status == types.JobStatusFailed || status == types.JobStatusCancelled {
		job.CompletedAt = &now
	}

	if jq.hub != nil {
		msgType := "status"
		message := string(status)
		progress := 0.0
		if job.Total > 0 {
			progress = float64(job.Progress) / float64(job.Total) * 100
		}

		switch status {
		case types.JobStatusCompleted:
			msgType = "complete"
			progress = 100.0
			summary := types.Summarize(job.Results)
			message = fmt.Sprintf("Conversion finished: %d succeeded, %d failed", summary.Succeeded, summary.Failed)
		case types.JobStatusFailed:
			msgType = "error"
			message = errorMsg
		case types.JobStatusProcessing:
			message = fmt.Sprintf("Converting %d inputs to MP3 %s", len(job.Inputs), job.Bitrate)
		}

		jq.hub.BroadcastProgress(id, msgType, string(status), "", "", message, progress)
	}
}

// Start begins processing jobs
func (jq *jobQueue) Start() {
	for i := 0; i < jq.maxWorkers; i++ {
		go jq.worker()
	}
}

// jobStatus reads a job's status under the lock
func (jq *jobQueue) jobStatus(id string) types.JobStatus {
	jq.mu.RLock()
	defer jq.mu.RUnlock()
	if job, exists := jq.jobs[id]; exists {
		return job.Status
	}
	return ""
}

// worker processes jobs from the queue
func (jq *jobQueue) worker() {
	for job := range jq.queue {
		if jq.jobStatus(job.ID) == types.JobStatusCancelled {
			continue
		}

		jq.setJobStatus(job.ID, types.JobStatusProcessing, "")

		if err := jq.processConversionJob(job); err != nil {
			jq.setJobStatus(job.ID, types.JobStatusFailed, err.Error())
			jq.log.Error("job failed", zap.String("jobId", job.ID), zap.Error(err))
		} else {
			jq.setJobStatus(job.ID, types.JobStatusCompleted, "")
			jq.log.Info("job completed", zap.String("jobId", job.ID))
		}
	}
}

// processConversionJob expands the job's inputs and runs the batch.
// Per-file failures are folded into results; only batch-level
// preconditions (no FLAC files, bad output directory) fail the job.
func (jq *jobQueue) processConversionJob(job *types.ConversionJob) error {
	files, err := jq.files.CollectFlacFiles(job.Inputs)
	if err != nil {
		return err
	}

	jq.setJobTotal(job.ID, len(files))

	_, _, err = jq.converter.ConvertBatch(context.Background(), files, job.Bitrate, job.OutputDir,
		func(index, total int, result types.ConversionResult) {
			jq.recordResult(job.ID, index, total, result)
		})
	return err
}
