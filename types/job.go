package types

import "time"

// JobStatus represents the current status of a conversion job
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// ConversionJob represents a batch conversion job in the queue
type ConversionJob struct {
	ID          string             `json:"id"`
	Status      JobStatus          `json:"status"`
	Inputs      []string           `json:"inputs"`
	Bitrate     Bitrate            `json:"bitrate"`
	OutputDir   string             `json:"outputDir,omitempty"`
	Progress    int                `json:"progress"`
	Total       int                `json:"total"`
	Results     []ConversionResult `json:"results,omitempty"`
	Error       string             `json:"error,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	StartedAt   *time.Time         `json:"startedAt,omitempty"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
}
