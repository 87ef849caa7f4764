package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microcredit-backoffice/internal/domain/client"
	"microcredit-backoffice/internal/domain/notification"
	"microcredit-backoffice/internal/testutil/notifymock"
)

func TestSend_PersonalisesWithClientName(t *testing.T) {
	sink := &notifymock.Sink{}
	dir := notifymock.Directory{"c1": {ClientID: "c1", Name: " Ana Matsinhe "}}
	d := NewDispatcher(sink, dir, time.Second)

	out := d.Send(context.Background(), "c1", notification.KindReminder, "your loan is due in 5 days")

	assert.True(t, out.Delivered)
	require.Len(t, sink.Sent, 1)
	assert.Equal(t, "Dear Ana Matsinhe, your loan is due in 5 days", sink.Sent[0].Text)
	assert.Equal(t, notification.KindReminder, sink.Sent[0].Kind)
}

func TestSend_UnknownClientKeepsMessage(t *testing.T) {
	sink := &notifymock.Sink{}
	d := NewDispatcher(sink, notifymock.Directory{}, 0)

	d.Send(context.Background(), "c9", notification.KindPenalty, "late fee applied")

	require.Len(t, sink.Sent, 1)
	assert.Equal(t, "late fee applied", sink.Sent[0].Text)
}

type failingDirectory struct{}

func (failingDirectory) Lookup(context.Context, string) (*client.Client, error) {
	return nil, errors.New("directory down")
}

func TestSend_DirectoryFailureStillSends(t *testing.T) {
	sink := &notifymock.Sink{}
	out := NewDispatcher(sink, failingDirectory{}, 0).Send(context.Background(), "c1", notification.KindPenalty, "x")
	assert.True(t, out.Delivered)
	assert.Len(t, sink.Sent, 1)
}

func TestSend_SinkErrorIsAbsorbed(t *testing.T) {
	boom := errors.New("smtp down")
	sink := &notifymock.Sink{Err: boom}

	out := NewDispatcher(sink, nil, 0).Send(context.Background(), "c1", notification.KindPaymentConfirmation, "x")

	assert.False(t, out.Delivered)
	assert.ErrorIs(t, out.Err, boom)
	assert.Contains(t, out.String(), "smtp down")
}

type slowSink struct{}

func (slowSink) Send(ctx context.Context, _ string, _ notification.Kind, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestSend_BoundedByTimeout(t *testing.T) {
	d := NewDispatcher(slowSink{}, nil, 20*time.Millisecond)

	start := time.Now()
	out := d.Send(context.Background(), "c1", notification.KindReminder, "x")

	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, out.Err, context.DeadlineExceeded)
}

type panicSink struct{}

func (panicSink) Send(context.Context, string, notification.Kind, string) error { panic("boom") }

func TestSend_PanicIsRecovered(t *testing.T) {
	out := NewDispatcher(panicSink{}, nil, 0).Send(context.Background(), "c1", notification.KindReminder, "x")
	assert.False(t, out.Delivered)
	assert.Error(t, out.Err)
}

func TestSend_NilSinkSkips(t *testing.T) {
	out := NewDispatcher(nil, nil, 0).Send(context.Background(), "c1", notification.KindReminder, "x")
	assert.Equal(t, "skipped", out.String())
}
