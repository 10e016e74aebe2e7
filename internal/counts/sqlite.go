package counts

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/outreach-reporter/internal/model"
)

// SQLiteStore implements Store with per-key upserts, for deployments where
// several writers may log counts at the same time.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS manual_counts (
	date    TEXT NOT NULL,
	channel TEXT NOT NULL,
	value   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (date, channel)
);
`

// NewSQLite opens (and migrates) a SQLite database at the given path and
// configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "counts: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "counts: exec %s", pragma)
		}
	}
	if _, err := db.Exec(sqliteMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "counts: migrate")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Set(ctx context.Context, date, channel string, value int) error {
	if !ValidChannel(channel) {
		return eris.Errorf("counts: unknown channel %q", channel)
	}
	if value < 0 {
		return eris.Errorf("counts: negative count %d", value)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO manual_counts (date, channel, value) VALUES (?, ?, ?)
		ON CONFLICT (date, channel) DO UPDATE SET value = excluded.value`,
		date, channel, value)
	return eris.Wrap(err, "counts: upsert")
}

func (s *SQLiteStore) Get(ctx context.Context, date string) (model.ManualCounts, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT channel, value FROM manual_counts WHERE date = ?`, date)
	if err != nil {
		return model.ManualCounts{}, eris.Wrap(err, "counts: query")
	}
	defer rows.Close()

	var rec model.ManualCounts
	for rows.Next() {
		var channel string
		var value int
		if err := rows.Scan(&channel, &value); err != nil {
			return model.ManualCounts{}, eris.Wrap(err, "counts: scan")
		}
		switch channel {
		case ChannelTelegram:
			rec.Telegram = value
		case ChannelSignal:
			rec.Signal = value
		case ChannelLinkedIn:
			rec.LinkedIn = value
		}
	}
	return rec, eris.Wrap(rows.Err(), "counts: rows")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
