package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"plantkeeper/internal/logging"

	"github.com/google/uuid"
)

// Content is the user-visible payload of a scheduled notification.
type Content struct {
	Title   string
	Body    string
	PlantID string
}

// TriggerKind selects how a notification repeats.
type TriggerKind int

const (
	// TriggerEvery fires on a fixed period (minute/hour units).
	TriggerEvery TriggerKind = iota
	// TriggerDaily fires every day at Hour:Minute.
	TriggerDaily
	// TriggerWeekly fires once a week on Weekday at Hour:Minute.
	TriggerWeekly
)

// Trigger describes a recurring notification schedule.
type Trigger struct {
	Kind    TriggerKind
	Every   time.Duration // TriggerEvery only
	Hour    int
	Minute  int
	Weekday time.Weekday // TriggerWeekly only
}

// Notifier is the external notification subsystem the scheduler talks to.
// Handles returned by Schedule are opaque; the scheduler stores them only to
// support cancellation later.
type Notifier interface {
	// RequestPermission asks the platform for permission to notify. A false
	// result is a user decision, not an error.
	RequestPermission(ctx context.Context) (bool, error)

	// Schedule registers a recurring notification and returns its handle.
	Schedule(ctx context.Context, content Content, trigger Trigger) (string, error)

	// Cancel revokes a previously scheduled notification by handle.
	Cancel(ctx context.Context, id string) error
}

// LocalNotifier is an in-process Notifier: triggers live in memory and fire
// as log lines from a polling loop. It stands in for a platform notification
// service in the CLI build.
type LocalNotifier struct {
	log logging.Logger

	mu      sync.Mutex
	pending map[string]*scheduled

	now func() time.Time // test seam
}

type scheduled struct {
	content  Content
	trigger  Trigger
	nextFire time.Time
}

func NewLocalNotifier(log logging.Logger) *LocalNotifier {
	return &LocalNotifier{
		log:     log,
		pending: make(map[string]*scheduled),
		now:     time.Now,
	}
}

// RequestPermission always grants; there is nothing to ask locally.
func (n *LocalNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

func (n *LocalNotifier) Schedule(ctx context.Context, content Content, trigger Trigger) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := uuid.NewString()
	n.pending[id] = &scheduled{
		content:  content,
		trigger:  trigger,
		nextFire: nextFire(trigger, n.now()),
	}
	n.log.Debug(ctx, "notification scheduled", "id", id, "plant_id", content.PlantID)
	return id, nil
}

func (n *LocalNotifier) Cancel(ctx context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.pending[id]; !ok {
		return fmt.Errorf("unknown notification id %s", id)
	}
	delete(n.pending, id)
	return nil
}

// Poll delivers every notification due at now by logging it, then advances
// its next fire time. It returns the delivered contents.
func (n *LocalNotifier) Poll(ctx context.Context, now time.Time) []Content {
	n.mu.Lock()
	defer n.mu.Unlock()

	var fired []Content
	for id, p := range n.pending {
		if p.nextFire.After(now) {
			continue
		}
		n.log.Info(ctx, p.content.Title, "body", p.content.Body, "plant_id", p.content.PlantID, "id", id)
		fired = append(fired, p.content)
		p.nextFire = nextFire(p.trigger, now)
	}
	return fired
}

// Run polls on a fixed interval until the context is canceled.
func (n *LocalNotifier) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.Poll(ctx, n.now())
		case <-ctx.Done():
			return
		}
	}
}

// nextFire computes the first firing of trigger strictly after now.
func nextFire(trigger Trigger, now time.Time) time.Time {
	switch trigger.Kind {
	case TriggerEvery:
		return now.Add(trigger.Every)
	case TriggerWeekly:
		at := time.Date(now.Year(), now.Month(), now.Day(), trigger.Hour, trigger.Minute, 0, 0, now.Location())
		days := (int(trigger.Weekday) - int(now.Weekday()) + 7) % 7
		at = at.AddDate(0, 0, days)
		if !at.After(now) {
			at = at.AddDate(0, 0, 7)
		}
		return at
	default: // TriggerDaily
		at := time.Date(now.Year(), now.Month(), now.Day(), trigger.Hour, trigger.Minute, 0, 0, now.Location())
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
		return at
	}
}
