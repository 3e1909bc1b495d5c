// Package notify delivers journal events to the owner. Delivery is best
// effort: a failing channel is logged and never surfaces to the mutation
// that produced the event.
package notify

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"trading-journal/internal/models"
	"trading-journal/pkg/utils"
)

// Channel is one way of reaching the owner.
type Channel interface {
	Name() string
	Send(ctx context.Context, n Notification) error
	IsEnabled() bool
}

// Notification is a rendered event.
type Notification struct {
	Kind    models.EventKind
	Title   string
	Message string
	// Sound is the sound to play, "" for a silent notification.
	Sound     string
	Timestamp time.Time
}

// Dispatcher renders events and fans them out to its channels, honouring
// the per-event notification settings.
type Dispatcher struct {
	channels []Channel
	currency string
	logger   zerolog.Logger
	now      func() time.Time
	mu       sync.RWMutex
}

// NewDispatcher returns a dispatcher without channels. Amounts are shown in
// currency.
func NewDispatcher(currency string, logger zerolog.Logger) *Dispatcher {
	if currency == "" {
		currency = utils.DefaultCurrency
	}
	return &Dispatcher{
		channels: make([]Channel, 0),
		currency: currency,
		logger:   logger.With().Str("component", "notify").Logger(),
		now:      time.Now,
	}
}

// AddChannel adds a notification channel.
func (d *Dispatcher) AddChannel(ch Channel) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.channels = append(d.channels, ch)
}

// Channels returns the registered channel names.
func (d *Dispatcher) Channels() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.channels))
	for _, ch := range d.channels {
		names = append(names, ch.Name())
	}
	return names
}

// Dispatch delivers every event whose settings channel is enabled.
func (d *Dispatcher) Dispatch(ctx context.Context, settings models.Settings, events []models.Event) {
	for _, ev := range events {
		n, ok := d.Render(settings, ev)
		if !ok {
			continue
		}
		d.Send(ctx, n)
	}
}

// Render turns ev into a notification. ok is false when the event kind is
// disabled in settings or unknown.
func (d *Dispatcher) Render(settings models.Settings, ev models.Event) (n Notification, ok bool) {
	ch, ok := ChannelFor(settings.Notifications, ev.Kind)
	if !ok || !ch.Enabled {
		return Notification{}, false
	}

	n = Notification{Kind: ev.Kind, Sound: ch.Sound(), Timestamp: d.now()}
	switch ev.Kind {
	case models.EventTradeWon:
		n.Title = "Trade won"
		n.Message = fmt.Sprintf("Profit of %s on %s", utils.FormatMoney(ev.Amount, d.currency), ev.Label)
	case models.EventTradeLost:
		n.Title = "Trade lost"
		n.Message = fmt.Sprintf("Loss of %s on %s", utils.FormatMoney(math.Abs(ev.Amount), d.currency), ev.Label)
	case models.EventObjectiveCompleted:
		n.Title = "Objective reached"
		n.Message = fmt.Sprintf("Congratulations, you completed: %s", ev.Label)
	}
	return n, true
}

// Send delivers n to all enabled channels.
func (d *Dispatcher) Send(ctx context.Context, n Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = d.now()
	}

	d.mu.RLock()
	channels := d.channels
	d.mu.RUnlock()

	for _, ch := range channels {
		if !ch.IsEnabled() {
			continue
		}
		if err := ch.Send(ctx, n); err != nil {
			d.logger.Debug().Err(err).
				Str("channel", ch.Name()).
				Str("event", string(n.Kind)).
				Msg("Notification failed")
		}
	}
}

// ChannelFor returns the settings channel that governs kind.
func ChannelFor(s models.NotificationSettings, kind models.EventKind) (models.NotificationChannel, bool) {
	switch kind {
	case models.EventTradeWon:
		return s.WinTrade, true
	case models.EventTradeLost:
		return s.LossTrade, true
	case models.EventObjectiveCompleted:
		return s.ObjectiveReached, true
	}
	return models.NotificationChannel{}, false
}

// LogChannel writes notifications to a logger.
type LogChannel struct {
	logger zerolog.Logger
}

// NewLogChannel creates a LogChannel.
func NewLogChannel(logger zerolog.Logger) *LogChannel {
	return &LogChannel{logger: logger}
}

func (l *LogChannel) Name() string { return "log" }

func (l *LogChannel) IsEnabled() bool { return true }

func (l *LogChannel) Send(_ context.Context, n Notification) error {
	l.logger.Info().
		Str("event", string(n.Kind)).
		Str("title", n.Title).
		Bool("sound", n.Sound != "").
		Msg(n.Message)
	return nil
}
