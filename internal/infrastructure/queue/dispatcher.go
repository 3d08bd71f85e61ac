package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentboard/jobboard/internal/api/metrics"
	"github.com/talentboard/jobboard/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes job lifecycle events to a fixed set of workers using
// consistent hashing on the job id, so events for one job run in order.
type Dispatcher struct {
	workers []chan ports.JobEvent
	service ports.JobEventService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.JobEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.JobEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.JobEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an event to the worker responsible for its job. It never
// blocks: when that worker's buffer is full the event is dropped, logged and
// counted with result "dropped".
func (d *Dispatcher) Enqueue(event ports.JobEvent) {
	idx := d.shardIndex(event.JobID)
	select {
	case d.workers[idx] <- event:
		metrics.JobEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.JobEventsProcessedTotal.WithLabelValues(string(event.Kind), "dropped").Inc()
		d.log.Warn().
			Str("job_id", event.JobID).
			Str("kind", string(event.Kind)).
			Int("worker_id", idx).
			Msg("job event queue full, event dropped")
	}
}

// shardIndex maps a job id deterministically to a worker index.
func (d *Dispatcher) shardIndex(jobID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(jobID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.JobEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.JobEventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			start := time.Now()
			err := d.service.Process(ctx, event)
			metrics.JobEventProcessingDuration.WithLabelValues(string(event.Kind)).Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.JobEventsProcessedTotal.WithLabelValues(string(event.Kind), "error").Inc()
				d.log.Error().Err(err).
					Str("job_id", event.JobID).
					Str("kind", string(event.Kind)).
					Int("worker_id", id).
					Msg("job event processing failed")
				continue
			}
			metrics.JobEventsProcessedTotal.WithLabelValues(string(event.Kind), "ok").Inc()
		}
	}
}
