// Package counts persists manually logged channel counts, keyed by ISO date.
// These cover outreach channels with no CRM integration (Telegram, Signal,
// and the LinkedIn supplement), entered by a human via slash command or CLI.
package counts

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-reporter/internal/config"
	"github.com/sells-group/outreach-reporter/internal/model"
)

// Channel names accepted by the store.
const (
	ChannelTelegram = "telegram"
	ChannelSignal   = "signal"
	ChannelLinkedIn = "linkedin"
)

// ValidChannel reports whether name is a manual-entry channel.
func ValidChannel(name string) bool {
	switch name {
	case ChannelTelegram, ChannelSignal, ChannelLinkedIn:
		return true
	}
	return false
}

// Store persists manual channel counts per calendar day. Dates are ISO
// strings (YYYY-MM-DD).
type Store interface {
	// Set records the count for one channel on the given date, preserving
	// the other channels' values.
	Set(ctx context.Context, date, channel string, value int) error

	// Get returns the counts for the given date, zero-valued when absent.
	Get(ctx context.Context, date string) (model.ManualCounts, error)

	Close() error
}

// New builds a store from configuration. The file driver rewrites a JSON
// file wholesale on every update (fine for rare human-triggered writes);
// the sqlite driver does per-key upserts and tolerates concurrent writers.
func New(cfg config.CountsConfig) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFile(cfg.Path), nil
	case "sqlite":
		return NewSQLite(cfg.Path)
	default:
		return nil, eris.Errorf("counts: unknown driver %q", cfg.Driver)
	}
}
