package helper

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ponto.app/ponto/core"
	"ponto.app/ponto/infrastructure/communication"
	"ponto.app/ponto/log"
	"ponto.app/ponto/model"
	"ponto.app/ponto/store"
)

var brt = time.FixedZone("BRT", -3*3600)

type fakeFiles struct {
	objects map[string][]byte
	err     error
}

func (f *fakeFiles) Bucket() string { return "ponto-archive" }

func (f *fakeFiles) ListFiles(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (f *fakeFiles) WriteFile(_ context.Context, key string, _ string, body []byte) error {
	if f.err != nil {
		return f.err
	}
	f.objects[key] = body
	return nil
}

type fakeMailer struct {
	sent []*communication.EmailInfo
}

func (m *fakeMailer) SendEmail(_ context.Context, info *communication.EmailInfo) (string, error) {
	m.sent = append(m.sent, info)
	return "msg-1", nil
}

type recordingNotifier struct {
	infos  []string
	errors []string
}

func (n *recordingNotifier) Info(_ context.Context, msg string) error {
	n.infos = append(n.infos, msg)
	return nil
}

func (n *recordingNotifier) Error(_ context.Context, msg string) error {
	n.errors = append(n.errors, msg)
	return nil
}

type fixture struct {
	archiver *Archiver
	files    *fakeFiles
	mailer   *fakeMailer
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 1, 0, 0, 0, brt)

	s := store.NewMemory()
	require.NoError(t, s.Save(ctx, "2026-10-17", []model.PunchEvent{
		{Timestamp: time.Date(2026, 10, 17, 8, 0, 0, 0, brt), Label: model.FirstIn, Description: "Primeira Entrada"},
		{Timestamp: time.Date(2026, 10, 17, 12, 0, 0, 0, brt), Label: model.FirstOut, Description: "Primeira Saída"},
	}))

	engine, err := core.NewEngine(ctx, s,
		core.WithClock(func() time.Time { return now }),
		core.WithLocation(brt),
		core.WithLogger(log.Discard()),
	)
	require.NoError(t, err)

	f := &fixture{
		files:    &fakeFiles{objects: map[string][]byte{}},
		mailer:   &fakeMailer{},
		notifier: &recordingNotifier{},
	}
	f.archiver = &Archiver{
		Engine:   engine,
		Files:    f.files,
		Mailer:   f.mailer,
		Notifier: f.notifier,
		From:     "ponto@example.com",
		To:       []string{"rh@example.com"},
		Now:      func() time.Time { return now },
		Logger:   log.Discard(),
	}
	return f
}

func TestArchiveKey(t *testing.T) {
	assert.Equal(t, "2026/10/ponto_eletronico_2026-10-17.txt", ArchiveKey("2026-10-17"))
}

func TestResolveDay(t *testing.T) {
	// just after midnight
	now := time.Date(2026, 10, 18, 1, 0, 0, 0, brt)
	day, err := ResolveDay("", now, brt)
	require.NoError(t, err)
	assert.Equal(t, model.DayKey("2026-10-17"), day)

	// 23:30 BRT is already the next day in UTC
	now = time.Date(2026, 10, 18, 23, 30, 0, 0, brt)
	day, err = ResolveDay("", now.UTC(), brt)
	require.NoError(t, err)
	assert.Equal(t, model.DayKey("2026-10-17"), day)

	_, err = ResolveDay("17/10/2026", now, brt)
	assert.ErrorIs(t, err, model.ErrInvalidDayKey)
}

func TestArchiveYesterday(t *testing.T) {
	f := newFixture(t)

	res, err := f.archiver.Archive(context.Background(), ArchiveEvent{})
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, model.DayKey("2026-10-17"), res.Day)
	assert.Equal(t, []string{"rh@example.com"}, res.Emailed)
	assert.Equal(t, "msg-1", res.MessageID)

	body := string(f.files.objects["2026/10/ponto_eletronico_2026-10-17.txt"])
	assert.Contains(t, body, "Data: 17/10/2026")
	assert.Contains(t, body, "Total de horas: 04:00")

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "Registros de Ponto 17/10/2026", f.mailer.sent[0].Subject)
	assert.Equal(t, "ponto_eletronico_2026-10-17.txt", f.mailer.sent[0].Attachments[0].Filename)

	require.Len(t, f.notifier.infos, 1)
	assert.Contains(t, f.notifier.infos[0], "s3://ponto-archive/2026/10/ponto_eletronico_2026-10-17.txt")
}

func TestArchiveSkips(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	res, err := f.archiver.Archive(ctx, ArchiveEvent{Day: "2026-10-10"})
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, "no punches", res.Reason)

	res, err = f.archiver.Archive(ctx, ArchiveEvent{DryRun: true, Email: []string{"eu@example.com"}})
	require.NoError(t, err)
	assert.Equal(t, "dry run", res.Reason)
	assert.Empty(t, f.files.objects)
	assert.Empty(t, f.mailer.sent)

	_, err = f.archiver.Archive(ctx, ArchiveEvent{Email: []string{"eu@example.com"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"eu@example.com"}, f.mailer.sent[0].To)

	res, err = f.archiver.Archive(ctx, ArchiveEvent{})
	require.NoError(t, err)
	assert.Equal(t, "already archived", res.Reason)
	assert.Len(t, f.mailer.sent, 1)

	res, err = f.archiver.Archive(ctx, ArchiveEvent{Overwrite: true})
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Len(t, f.mailer.sent, 2)
}

func TestArchiveReportsFailure(t *testing.T) {
	f := newFixture(t)
	f.files.err = errors.New("access denied")

	_, err := f.archiver.Archive(context.Background(), ArchiveEvent{})
	assert.ErrorContains(t, err, "access denied")
	require.Len(t, f.notifier.errors, 1)
	assert.Contains(t, f.notifier.errors[0], "access denied")
	assert.Empty(t, f.mailer.sent)

	_, err = f.archiver.Archive(context.Background(), ArchiveEvent{Day: "ontem"})
	assert.ErrorIs(t, err, model.ErrInvalidDayKey)
}
