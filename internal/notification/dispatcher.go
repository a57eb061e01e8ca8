package notification

import (
	"context"
	"log"
	"time"
)

// Kind selects which message template an event uses.
type Kind string

const (
	KindConfirmation Kind = "confirmation"
	KindStatusUpdate Kind = "status_update"
)

type Event struct {
	Kind        Kind
	PhoneNumber string
	ReadableID  string
	SalonName   string
	WhenText    string
	NewStatus   string
}

// Dispatcher queues SMS events and sends them from a single worker
// goroutine. Sending is fire-and-forget: a full queue drops the event and a
// gateway failure is logged, neither ever reaches the caller.
type Dispatcher struct {
	sender Sender
	queue  chan Event
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

		var err error
		switch ev.Kind {
		case KindConfirmation:
			_, err = d.sender.SendAppointmentConfirmation(
				ctx, ev.PhoneNumber, ev.ReadableID, ev.SalonName, ev.WhenText,
			)
		case KindStatusUpdate:
			_, err = d.sender.SendStatusUpdate(
				ctx, ev.PhoneNumber, ev.ReadableID, ev.NewStatus,
			)
		}
		cancel()

		if err != nil {
			log.Println("sms error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.PhoneNumber == "" {
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Println("sms queue full, dropping event")
	}
}
