package models

import "time"

type SourceKind string

const (
	SourceKindDirectory   SourceKind = "directory"
	SourceKindZip         SourceKind = "zip"
	SourceKindRar         SourceKind = "rar"
	SourceKindSevenZip    SourceKind = "7z"
	SourceKindUnsupported SourceKind = "unsupported"
)

type OutcomeStatus string

const (
	OutcomeStatusPending     OutcomeStatus = "pending"
	OutcomeStatusRunning     OutcomeStatus = "running"
	OutcomeStatusDone        OutcomeStatus = "done"
	OutcomeStatusUnsupported OutcomeStatus = "unsupported"
	OutcomeStatusFailed      OutcomeStatus = "failed"
)

// Outcome is the per-source result of one transcode.
type Outcome struct {
	ID              string        `json:"id"`
	Source          string        `json:"source"`
	Kind            SourceKind    `json:"kind"`
	Status          OutcomeStatus `json:"status"`
	Destination     string        `json:"destination,omitempty"`
	Entries         int           `json:"entries"`
	RelocatedTo     string        `json:"relocated_to,omitempty"`
	Error           string        `json:"error,omitempty"`
	RelocationError string        `json:"relocation_error,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
