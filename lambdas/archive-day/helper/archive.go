package helper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"ponto.app/ponto/core"
	"ponto.app/ponto/infrastructure/communication"
	"ponto.app/ponto/model"
)

type ArchiveEvent struct {
	Day       string   `json:"day,omitempty"`
	Email     []string `json:"email,omitempty"`
	DryRun    bool     `json:"dryRun"`
	Overwrite bool     `json:"overwrite"`
}

type ArchiveResult struct {
	Day       model.DayKey `json:"day"`
	Key       string       `json:"key"`
	Skipped   bool         `json:"skipped"`
	Reason    string       `json:"reason,omitempty"`
	Emailed   []string     `json:"emailed,omitempty"`
	MessageID string       `json:"messageId,omitempty"`
}

type FileStore interface {
	Bucket() string
	ListFiles(ctx context.Context, prefix string) ([]string, error)
	WriteFile(ctx context.Context, key string, contentType string, body []byte) error
}

type Mailer interface {
	SendEmail(ctx context.Context, info *communication.EmailInfo) (string, error)
}

type Archiver struct {
	Engine   *core.Engine
	Files    FileStore
	Mailer   Mailer
	Notifier communication.Notifier
	From     string
	To       []string
	Now      func() time.Time
	Logger   *slog.Logger
}

// ArchiveKey is the object key of a day's export: YYYY/MM/<file name>.
func ArchiveKey(day model.DayKey) string {
	return fmt.Sprintf("%s/%s/%s", day[:4], day[5:7], core.ExportFileName(day))
}

// ResolveDay returns the requested day, or yesterday in loc when empty.
func ResolveDay(s string, now time.Time, loc *time.Location) (model.DayKey, error) {
	if s != "" {
		return model.ParseDayKey(s)
	}
	return model.DayKeyOf(now.In(loc).AddDate(0, 0, -1)), nil
}

func (a *Archiver) Archive(ctx context.Context, ev ArchiveEvent) (*ArchiveResult, error) {
	res, err := a.archive(ctx, ev)
	if err != nil && a.Notifier != nil {
		if nerr := a.Notifier.Error(ctx, fmt.Sprintf("Falha ao arquivar o ponto: %v", err)); nerr != nil {
			a.Logger.Error("failed to notify", "err", nerr)
		}
	}
	return res, err
}

func (a *Archiver) archive(ctx context.Context, ev ArchiveEvent) (*ArchiveResult, error) {
	day, err := ResolveDay(ev.Day, a.Now(), a.Engine.Location())
	if err != nil {
		return nil, err
	}
	res := &ArchiveResult{Day: day, Key: ArchiveKey(day)}

	text, err := a.Engine.ExportHistoryDay(ctx, day)
	if errors.Is(err, core.ErrNothingToExport) {
		a.Logger.Info("nothing to archive", "day", day)
		res.Skipped, res.Reason = true, "no punches"
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	if !ev.Overwrite {
		keys, err := a.Files.ListFiles(ctx, res.Key)
		if err != nil {
			return nil, err
		}
		if slices.Contains(keys, res.Key) {
			a.Logger.Info("already archived", "day", day, "key", res.Key)
			res.Skipped, res.Reason = true, "already archived"
			return res, nil
		}
	}

	recipients := ev.Email
	if len(recipients) == 0 {
		recipients = a.To
	}

	if ev.DryRun {
		a.Logger.Info("dry run", "day", day, "key", res.Key, "recipients", recipients)
		res.Skipped, res.Reason = true, "dry run"
		return res, nil
	}

	if err := a.Files.WriteFile(ctx, res.Key, "text/plain; charset=utf-8", []byte(text)); err != nil {
		return nil, err
	}
	a.Logger.Info("archived", "day", day, "bucket", a.Files.Bucket(), "key", res.Key)

	if a.Mailer != nil && len(recipients) > 0 {
		id, err := a.Mailer.SendEmail(ctx, &communication.EmailInfo{
			From:    a.From,
			To:      recipients,
			Subject: fmt.Sprintf("Registros de Ponto %s", day.Display()),
			Text:    text,
			Attachments: []communication.Attachment{
				{Filename: core.ExportFileName(day), ContentType: "text/plain", Content: []byte(text)},
			},
		})
		if err != nil {
			return nil, err
		}
		res.Emailed, res.MessageID = recipients, id
	}

	if a.Notifier != nil {
		msg := fmt.Sprintf("Ponto de %s arquivado em s3://%s/%s", day.Display(), a.Files.Bucket(), res.Key)
		if err := a.Notifier.Info(ctx, msg); err != nil {
			a.Logger.Error("failed to notify", "err", err)
		}
	}

	return res, nil
}
