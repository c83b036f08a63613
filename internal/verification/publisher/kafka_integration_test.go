//go:build integration

package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"numcheck/internal/verification/models"
	"numcheck/internal/verification/publisher"
	"numcheck/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
}

func (s *KafkaPublisherSuite) TestPublishedResultIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "numcheck.results.test"

	pub, err := publisher.NewKafka(ctx, s.redpanda.Brokers, topic)
	s.Require().NoError(err)
	defer pub.Close()

	// Creating the topic twice is fine.
	again, err := publisher.NewKafka(ctx, s.redpanda.Brokers, topic)
	s.Require().NoError(err)
	again.Close()

	rec := models.Record{ID: 9, Result: models.Result{
		RawNumber: "+910000000001",
		Address:   "910000000001@c.us",
		Outcome:   models.OutcomeRegistered,
		CheckedAt: time.Now().UTC(),
	}}
	s.Require().NoError(pub.Publish(ctx, rec))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().NoError(fetches.Err())
	records := fetches.Records()
	s.Require().NotEmpty(records)

	var ev publisher.ResultEvent
	s.Require().NoError(json.Unmarshal(records[0].Value, &ev))
	s.Equal("910000000001@c.us", string(records[0].Key))
	s.EqualValues(9, ev.ID)
	s.Equal("Available on WhatsApp", ev.Status)
}
