package call

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/mqtt"
)

// Subscriber is the broker surface the dispatcher needs; satisfied by
// *mqtt.Client.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
}

// Dispatcher owns the single subscription to the incoming-call topic
// and fans each event out to the registered trackers.
//
// One subscription feeds all accounts: the broker client keeps one
// handler per topic, so per-account subscriptions would displace each
// other. Every tracker sees every event; trackers that find no door id
// ignore it.
type Dispatcher struct {
	broker Subscriber
	log    *logging.Logger

	mu       sync.RWMutex
	trackers []*Tracker
	attached bool
}

// NewDispatcher creates a dispatcher on the given broker connection.
func NewDispatcher(broker Subscriber, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{
		broker: broker,
		log:    logger.With("component", "call-dispatcher"),
	}
}

// Register adds a tracker to the fan-out. Safe to call before or after
// Attach.
func (d *Dispatcher) Register(t *Tracker) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.trackers = append(d.trackers, t)
}

// Attach subscribes to the incoming-call topic and begins dispatching.
func (d *Dispatcher) Attach() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.attached {
		return nil
	}

	topic := mqtt.Topics{}.IncomingCall()
	if err := d.broker.Subscribe(topic, 1, d.handleMessage); err != nil {
		return fmt.Errorf("subscribing to incoming calls: %w", err)
	}

	d.attached = true
	d.log.Info("listening for incoming calls", "topic", topic)
	return nil
}

// Detach unsubscribes and stops dispatching.
func (d *Dispatcher) Detach() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.attached {
		return nil
	}

	if err := d.broker.Unsubscribe(mqtt.Topics{}.IncomingCall()); err != nil {
		return fmt.Errorf("unsubscribing from incoming calls: %w", err)
	}

	d.attached = false
	return nil
}

// handleMessage decodes one incoming-call message and fans it out.
//
// A payload that is not a JSON object is dropped with a warning; a bad
// message from the relay must not break the subscription.
func (d *Dispatcher) handleMessage(_ string, payload []byte) error {
	var event map[string]any
	if err := json.Unmarshal(payload, &event); err != nil {
		d.log.Warn("dropping malformed incoming-call event", "error", err)
		return nil
	}

	d.mu.RLock()
	trackers := make([]*Tracker, len(d.trackers))
	copy(trackers, d.trackers)
	d.mu.RUnlock()

	for _, t := range trackers {
		t.HandleEvent(context.Background(), event)
	}
	return nil
}
