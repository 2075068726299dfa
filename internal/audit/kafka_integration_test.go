//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"checkin/internal/audit"
	"checkin/pkg/testutil/containers"
)

type KafkaSinkSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	sink     *audit.KafkaSink
}

func TestKafkaSinkSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaSinkSuite))
}

const testTopic = "checkin.audit.events.test"

func (s *KafkaSinkSuite) SetupSuite() {
	s.redpanda = containers.NewRedpandaContainer(s.T())

	sink, err := audit.NewKafkaSink(context.Background(), []string{s.redpanda.Broker}, testTopic)
	s.Require().NoError(err)
	s.sink = sink
}

func (s *KafkaSinkSuite) TearDownSuite() {
	if s.sink != nil {
		s.sink.Close()
	}
}

func (s *KafkaSinkSuite) TestSinkCreationIsIdempotent() {
	// The topic already exists from SetupSuite; a second sink must tolerate
	// that.
	sink, err := audit.NewKafkaSink(context.Background(), []string{s.redpanda.Broker}, testTopic)
	s.Require().NoError(err)
	sink.Close()
}

func (s *KafkaSinkSuite) TestPublishRoundTrip() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	event := audit.Event{
		Timestamp:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		SubmissionID: "sub-1",
		Action:       audit.ActionSubmitted,
		Outcome:      "OK",
	}
	s.Require().NoError(s.sink.Publish(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().NoError(fetches.Err())

	records := fetches.Records()
	s.Require().NotEmpty(records)

	record := records[len(records)-1]
	s.Equal("sub-1", string(record.Key))

	var got audit.Event
	s.Require().NoError(json.Unmarshal(record.Value, &got))
	s.Equal(audit.ActionSubmitted, got.Action)
	s.Equal("OK", got.Outcome)
	s.True(got.Timestamp.Equal(event.Timestamp))
}
