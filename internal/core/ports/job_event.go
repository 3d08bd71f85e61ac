package ports

import (
	"context"
	"time"
)

// JobEventKind names what happened to a posting.
type JobEventKind string

const (
	JobDeleted JobEventKind = "job.deleted"
)

// JobEvent is a lifecycle notification handled asynchronously after a write.
type JobEvent struct {
	JobID      string
	Kind       JobEventKind
	OccurredAt time.Time
}

// JobEventService processes lifecycle events.
type JobEventService interface {
	Process(ctx context.Context, event JobEvent) error
}
