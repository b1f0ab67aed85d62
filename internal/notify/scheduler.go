package notify

import (
	"fmt"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/cailloux/agenda/internal/config"
	"github.com/cailloux/agenda/internal/task"
	"github.com/cailloux/agenda/internal/tz"
)

type Kind string

const (
	KindDueNow  Kind = "due"
	KindDueSoon Kind = "pre"
)

// Event is one notification the scheduler has decided to emit. Key is
// the idempotence handle; it enters the sent registry only after the
// host accepts the notification.
type Event struct {
	Key    string
	TaskID string
	Kind   Kind
	Title  string
	Body   string
}

const bodyWrapWidth = 60

// CollectDueEvents computes the set of notifications to emit right
// now. Pure: identical inputs always produce the identical event list,
// and a key present in sent is never re-emitted.
func CollectDueEvents(tasks []task.Task, loc *time.Location, cfg config.Notifications, sent map[string]bool, nowMs int64) []Event {
	if !cfg.Enabled {
		return nil
	}
	cfg = cfg.Sanitize()
	preWindowMs := int64(cfg.PreNotifyMinutes) * 60_000

	var events []Event
	for _, t := range tasks {
		if !t.Status.Open() {
			continue
		}
		dueMs, ok := tz.ParseDueUTC(t.Due)
		if !ok {
			continue
		}

		if cfg.PreNotifyEnabled && nowMs < dueMs && nowMs >= dueMs-preWindowMs {
			key := fmt.Sprintf("%s:%d:%s:%d", t.ID, dueMs, KindDueSoon, cfg.PreNotifyMinutes)
			if !sent[key] {
				events = append(events, Event{
					Key:    key,
					TaskID: t.ID,
					Kind:   KindDueSoon,
					Title:  "Task due soon",
					Body:   eventBody(t, dueMs, loc),
				})
			}
		}

		if nowMs >= dueMs {
			key := fmt.Sprintf("%s:%d:%s", t.ID, dueMs, KindDueNow)
			if !sent[key] {
				events = append(events, Event{
					Key:    key,
					TaskID: t.ID,
					Kind:   KindDueNow,
					Title:  "Task due",
					Body:   eventBody(t, dueMs, loc),
				})
			}
		}
	}
	return events
}

func eventBody(t task.Task, dueMs int64, loc *time.Location) string {
	title := wordwrap.String(t.DisplayTitle(), bodyWrapWidth)
	return fmt.Sprintf("%s\n%s", title, tz.FormatZoned(dueMs, loc))
}

// Registry persists delivered notification keys.
type Registry interface {
	SentKeys() (map[string]bool, error)
	AddSentKeys(keys []string, nowMs int64) error
}

// Scan runs one notification pass: collect events, show each, and
// record only the keys the host actually accepted so suppressed
// notifications are retried on the next scan. Per-event failures are
// aggregated into one descriptive error; the pass never aborts early.
func Scan(tasks []task.Task, loc *time.Location, cfg config.Notifications, reg Registry, n Notifier, nowMs int64) (delivered int, err error) {
	sent, err := reg.SentKeys()
	if err != nil {
		return 0, err
	}

	events := CollectDueEvents(tasks, loc, cfg, sent, nowMs)
	if len(events) == 0 {
		return 0, nil
	}

	var accepted []string
	suppressed := 0
	for _, ev := range events {
		if n.Show(ev.Title, ev.Body) {
			accepted = append(accepted, ev.Key)
		} else {
			suppressed++
		}
	}

	if perr := reg.AddSentKeys(accepted, nowMs); perr != nil {
		return len(accepted), fmt.Errorf("persist sent keys: %w", perr)
	}
	if suppressed > 0 {
		return len(accepted), fmt.Errorf("%d of %d notifications suppressed by host", suppressed, len(events))
	}
	return len(accepted), nil
}
