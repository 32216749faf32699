package communication

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPoster struct {
	channels []string
	err      error
}

func (r *recordingPoster) PostMessageContext(_ context.Context, channelID string, _ ...slack.MsgOption) (string, string, error) {
	r.channels = append(r.channels, channelID)
	return channelID, "1", r.err
}

func TestSlackChannels(t *testing.T) {
	ctx := context.Background()

	poster := &recordingPoster{}
	s := NewSlackWithClient(poster, SlackOption{InfoChannelID: "C-INFO", ErrorChannelID: "C-ERR"})
	require.NoError(t, s.Info(ctx, "oito horas"))
	require.NoError(t, s.Error(ctx, "falhou"))
	assert.Equal(t, []string{"C-INFO", "C-ERR"}, poster.channels)

	poster = &recordingPoster{}
	s = NewSlackWithClient(poster, SlackOption{InfoChannelID: "C-INFO"})
	require.NoError(t, s.Error(ctx, "falhou"))
	assert.Equal(t, []string{"C-INFO"}, poster.channels)

	poster = &recordingPoster{}
	s = NewSlackWithClient(poster, SlackOption{})
	require.NoError(t, s.Info(ctx, "ignored"))
	assert.Empty(t, poster.channels)
}

func TestSlackPostError(t *testing.T) {
	s := NewSlackWithClient(&recordingPoster{err: errors.New("channel_not_found")}, SlackOption{InfoChannelID: "C"})
	err := s.Info(context.Background(), "x")
	assert.ErrorContains(t, err, "failed to post message to Slack")
}

type fakeSES struct {
	raw []byte
}

func (f *fakeSES) SendRawEmail(_ context.Context, in *ses.SendRawEmailInput, _ ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	f.raw = in.RawMessage.Data
	return &ses.SendRawEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSendEmail(t *testing.T) {
	client := &fakeSES{}
	m := NewMailer(client)

	id, err := m.SendEmail(context.Background(), &EmailInfo{
		From:    "ponto@example.com",
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Ponto 17/10/2026",
		Text:    "Segue o registro.",
		Attachments: []Attachment{
			{Filename: "ponto_eletronico_2026-10-17.txt", ContentType: "text/plain", Content: []byte("Registros de Ponto Eletrônico")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	raw := string(client.raw)
	assert.Contains(t, raw, "From: ponto@example.com\r\n")
	assert.Contains(t, raw, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, raw, "Segue o registro.")
	assert.Contains(t, raw, `attachment; filename="ponto_eletronico_2026-10-17.txt"`)
	assert.Contains(t, raw, base64.StdEncoding.EncodeToString([]byte("Registros de Ponto Eletrônico")))
}

func TestSendEmailWithoutRecipients(t *testing.T) {
	_, err := NewMailer(&fakeSES{}).SendEmail(context.Background(), &EmailInfo{From: "x@example.com"})
	assert.Error(t, err)
}
