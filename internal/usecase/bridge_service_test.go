package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/kafkabridge/internal/kafka"
	"github.com/Gunvolt24/kafkabridge/internal/ports/mocks"
	"github.com/Gunvolt24/kafkabridge/internal/usecase"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const topic = "rust"

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type deps struct {
	producer *mocks.MockMessageProducer
	catalog  *mocks.MockTopicCatalog
	streamer *mocks.MockEventStreamer
	sub      *mocks.MockSubscriber
}

func newService(t *testing.T, opts usecase.Options) (*usecase.BridgeService, deps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := deps{
		producer: mocks.NewMockMessageProducer(ctrl),
		catalog:  mocks.NewMockTopicCatalog(ctrl),
		streamer: mocks.NewMockEventStreamer(ctrl),
		sub:      mocks.NewMockSubscriber(ctrl),
	}
	if opts.Topic == "" {
		opts.Topic = topic
	}
	svc := usecase.NewBridgeService(d.producer, d.catalog, d.streamer, d.sub, noopLogger{}, opts)
	return svc, d
}

func TestSend_OK(t *testing.T) {
	svc, d := newService(t, usecase.Options{})

	d.producer.EXPECT().SendN(gomock.Any(), topic, 5).Return(4, nil)

	got, err := svc.Send(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, "sent 5 to rust topic", got)
}

func TestSend_InvalidCount(t *testing.T) {
	svc, _ := newService(t, usecase.Options{MaxSendCount: 10})

	for _, n := range []int{0, -1, 11} {
		_, err := svc.Send(context.Background(), n)
		require.ErrorIs(t, err, usecase.ErrInvalidCount, "count=%d", n)
	}
}

func TestSend_ProducerError(t *testing.T) {
	svc, d := newService(t, usecase.Options{})

	sendErr := &kafka.Error{Op: "send", Kind: kafka.ErrSendTransport, Err: errors.New("no brokers")}
	d.producer.EXPECT().SendN(gomock.Any(), topic, 3).Return(1, sendErr)

	_, err := svc.Send(context.Background(), 3)
	require.ErrorIs(t, err, kafka.ErrSendTransport)
}

func TestStartStopConsuming(t *testing.T) {
	svc, d := newService(t, usecase.Options{})
	ctrl := gomock.NewController(t)
	sess := mocks.NewMockConsumeSession(ctrl)

	done := make(chan struct{})
	sess.EXPECT().ID().Return("s-1").AnyTimes()
	sess.EXPECT().Done().Return(done).AnyTimes()
	sess.EXPECT().Err().Return(nil).AnyTimes()

	gomock.InOrder(
		d.streamer.EXPECT().StartConsuming(gomock.Any(), []string{topic}, d.sub).Return(sess, nil),
		d.streamer.EXPECT().StopConsuming(sess).Do(func(_ any) { close(done) }),
	)

	id, err := svc.StartConsuming(context.Background())
	require.NoError(t, err)
	require.Equal(t, "s-1", id)

	require.NoError(t, svc.StopConsuming(context.Background()))
}

func TestStartConsuming_StreamerError(t *testing.T) {
	svc, d := newService(t, usecase.Options{})
	busy := errors.New("consumer session already running")

	d.streamer.EXPECT().StartConsuming(gomock.Any(), []string{topic}, d.sub).Return(nil, busy)

	_, err := svc.StartConsuming(context.Background())
	require.ErrorIs(t, err, busy)
}

func TestStopConsuming_NoSession(t *testing.T) {
	svc, _ := newService(t, usecase.Options{})
	require.NoError(t, svc.StopConsuming(context.Background()))
}

func TestStopConsuming_WaitBoundedByContext(t *testing.T) {
	svc, d := newService(t, usecase.Options{})
	ctrl := gomock.NewController(t)
	sess := mocks.NewMockConsumeSession(ctrl)

	sess.EXPECT().ID().Return("s-2").AnyTimes()
	sess.EXPECT().Done().Return(make(chan struct{})).AnyTimes()

	d.streamer.EXPECT().StartConsuming(gomock.Any(), gomock.Any(), gomock.Any()).Return(sess, nil)
	d.streamer.EXPECT().StopConsuming(sess)

	_, err := svc.StartConsuming(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, svc.StopConsuming(ctx), context.DeadlineExceeded)
}

func TestListTopics(t *testing.T) {
	svc, d := newService(t, usecase.Options{MetadataTimeout: 5 * time.Second})

	d.catalog.EXPECT().FetchTopicMetadata(gomock.Any(), 5*time.Second).Return([]string{"a", "b"}, nil)

	got, err := svc.ListTopics(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)
}

func TestListTopics_DefaultTimeoutAndError(t *testing.T) {
	svc, d := newService(t, usecase.Options{})

	timeoutErr := &kafka.Error{Op: "metadata", Kind: kafka.ErrMetadataTimeout, Err: context.DeadlineExceeded}
	d.catalog.EXPECT().FetchTopicMetadata(gomock.Any(), usecase.DefaultMetadataTimeout).Return(nil, timeoutErr)

	_, err := svc.ListTopics(context.Background())
	require.ErrorIs(t, err, kafka.ErrMetadataTimeout)
}
