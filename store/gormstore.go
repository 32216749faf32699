package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"ponto.app/ponto/model"
)

// PunchRecord is the row layout of one punch in the punch_events table.
type PunchRecord struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)"`
	Day         string      `gorm:"type:char(10);not null;index:idx_day_position,priority:1"`
	Position    int         `gorm:"not null;index:idx_day_position,priority:2"`
	Timestamp   time.Time   `gorm:"type:datetime(3);not null"`
	Label       model.Label `gorm:"type:varchar(32);not null"`
	Description string      `gorm:"type:varchar(255);not null"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP"`
}

func (PunchRecord) TableName() string {
	return "punch_events"
}

func (r PunchRecord) Event() model.PunchEvent {
	return model.PunchEvent{
		ID:          r.ID,
		Timestamp:   r.Timestamp,
		Label:       r.Label,
		Description: r.Description,
	}
}

// GormStore keeps punches in MySQL, one row per punch ordered by position.
type GormStore struct {
	dm       *DatabaseManager
	location *time.Location
}

func NewGormStore(dm *DatabaseManager, loc *time.Location) *GormStore {
	if loc == nil {
		loc = time.Local
	}
	return &GormStore{dm: dm, location: loc}
}

// Migrate creates the punch_events table when missing.
func (s *GormStore) Migrate(ctx context.Context) error {
	return s.dm.Exec(ctx, func(db *gorm.DB) error {
		if db.Migrator().HasTable(&PunchRecord{}) {
			return nil
		}
		if err := db.Migrator().CreateTable(&PunchRecord{}); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", PunchRecord{}, err)
		}
		return nil
	})
}

func (s *GormStore) Load(ctx context.Context, day model.DayKey) ([]model.PunchEvent, error) {
	var records []PunchRecord
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("day = ?", string(day)).Order("position").Find(&records).Error
	}); err != nil {
		return nil, fmt.Errorf("failed to load day %s: %w", day, err)
	}

	events := make([]model.PunchEvent, len(records))
	for i, r := range records {
		events[i] = r.Event()
		events[i].Timestamp = r.Timestamp.In(s.location)
	}
	return events, nil
}

// Save replaces the day's rows in one transaction.
func (s *GormStore) Save(ctx context.Context, day model.DayKey, events []model.PunchEvent) error {
	records := make([]PunchRecord, len(events))
	for i, e := range events {
		records[i] = PunchRecord{
			ID:          e.ID,
			Day:         string(day),
			Position:    i,
			Timestamp:   e.Timestamp,
			Label:       e.Label,
			Description: e.Description,
		}
	}

	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("day = ?", string(day)).Delete(&PunchRecord{}).Error; err != nil {
				return err
			}
			if len(records) == 0 {
				return nil
			}
			return tx.CreateInBatches(records, 100).Error
		})
	})
	if err != nil {
		return fmt.Errorf("failed to save day %s: %w", day, err)
	}
	return nil
}

func (s *GormStore) ListDays(ctx context.Context) ([]model.DayKey, error) {
	var raw []string
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Model(&PunchRecord{}).Distinct("day").Order("day DESC").Pluck("day", &raw).Error
	}); err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}

	days := make([]model.DayKey, 0, len(raw))
	for _, d := range raw {
		days = append(days, model.DayKey(d))
	}
	return days, nil
}

func (s *GormStore) DeleteDay(ctx context.Context, day model.DayKey) error {
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("day = ?", string(day)).Delete(&PunchRecord{}).Error
	}); err != nil {
		return fmt.Errorf("failed to delete day %s: %w", day, err)
	}
	return nil
}
