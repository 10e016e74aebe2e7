package counts

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-reporter/internal/model"
)

// FileStore keeps the full date→counts map in one JSON file and rewrites it
// on every update. Last write wins; there is no locking.
type FileStore struct {
	path string
}

// NewFile creates a file-backed store at the given path. The file is
// created lazily on first write.
func NewFile(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() (map[string]model.ManualCounts, error) {
	data := make(map[string]model.ManualCounts)

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return data, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "counts: read file")
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, eris.Wrap(err, "counts: parse file")
	}
	return data, nil
}

func (s *FileStore) save(data map[string]model.ManualCounts) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "counts: create data dir")
		}
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return eris.Wrap(err, "counts: marshal")
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return eris.Wrap(err, "counts: write file")
	}
	return nil
}

func (s *FileStore) Set(_ context.Context, date, channel string, value int) error {
	if !ValidChannel(channel) {
		return eris.Errorf("counts: unknown channel %q", channel)
	}
	if value < 0 {
		return eris.Errorf("counts: negative count %d", value)
	}

	data, err := s.load()
	if err != nil {
		return err
	}

	rec := data[date]
	switch channel {
	case ChannelTelegram:
		rec.Telegram = value
	case ChannelSignal:
		rec.Signal = value
	case ChannelLinkedIn:
		rec.LinkedIn = value
	}
	data[date] = rec

	return s.save(data)
}

func (s *FileStore) Get(_ context.Context, date string) (model.ManualCounts, error) {
	data, err := s.load()
	if err != nil {
		return model.ManualCounts{}, err
	}
	return data[date], nil
}

func (s *FileStore) Close() error {
	return nil
}
