package audit

import "github.com/BruksfildServices01/care-scheduler/internal/logger"

// Actions and entities written by the booking use cases.
const (
	ActionBookingReassigned    = "booking_reassigned"
	ActionBookingStatusChanged = "booking_status_changed"

	EntityBooking = "booking"
)

// IsKnownAction reports whether action is one the API records.
func IsKnownAction(action string) bool {
	switch action {
	case ActionBookingReassigned, ActionBookingStatusChanged:
		return true
	}
	return false
}

type Event struct {
	BranchID uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Recorder persists one audit event.
type Recorder interface {
	Record(ev Event) error
}

type Dispatcher struct {
	recorder Recorder
	queue    chan Event
	done     chan struct{}
}

func NewDispatcher(recorder Recorder) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		queue:    make(chan Event, 100),
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.recorder.Record(ev); err != nil {
			logger.Error("audit error", "action", ev.Action, "err", err)
		}
	}
}

// Dispatch never blocks: when the queue is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drains the queue and waits for the worker to finish.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
