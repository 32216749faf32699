package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ponto.app/ponto/model"
)

const filePrefix = "ponto_eletronico_"

// FileStore writes one JSON file per day into a directory. The file body
// is the same array the browser version kept under ponto_eletronico_<day>.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (fs *FileStore) path(day model.DayKey) string {
	return filepath.Join(fs.Dir, filePrefix+string(day)+".json")
}

func (fs *FileStore) Load(_ context.Context, day model.DayKey) ([]model.PunchEvent, error) {
	b, err := os.ReadFile(fs.path(day))
	if errors.Is(err, os.ErrNotExist) {
		return []model.PunchEvent{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read day %s: %w", day, err)
	}

	var events []model.PunchEvent
	if err := json.Unmarshal(b, &events); err != nil {
		return nil, fmt.Errorf("failed to decode day %s: %w", day, err)
	}
	if events == nil {
		events = []model.PunchEvent{}
	}
	return events, nil
}

func (fs *FileStore) Save(_ context.Context, day model.DayKey, events []model.PunchEvent) error {
	if events == nil {
		events = []model.PunchEvent{}
	}
	b, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode day %s: %w", day, err)
	}

	tmp, err := os.CreateTemp(fs.Dir, filePrefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write day %s: %w", day, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write day %s: %w", day, err)
	}
	if err := os.Rename(tmp.Name(), fs.path(day)); err != nil {
		return fmt.Errorf("failed to replace day %s: %w", day, err)
	}
	return nil
}

func (fs *FileStore) ListDays(_ context.Context) ([]model.DayKey, error) {
	entries, err := os.ReadDir(fs.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", fs.Dir, err)
	}

	var days []model.DayKey
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		day, err := model.ParseDayKey(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), ".json"))
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sortDaysDesc(days)
	return days, nil
}

func (fs *FileStore) DeleteDay(_ context.Context, day model.DayKey) error {
	err := os.Remove(fs.path(day))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete day %s: %w", day, err)
	}
	return nil
}
