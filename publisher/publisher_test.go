package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/aggregator"
	"bikeshare/communication"
	"bikeshare/config"
	"bikeshare/domain/business/queryresponse"
	"bikeshare/domain/entities/eof"
	"bikeshare/domain/entities/trip"
	"bikeshare/loader"
	"bikeshare/queryhandlers"
	"bikeshare/session"
)

type publishedMessage struct {
	exchange   string
	routingKey string
	queue      string
	body       []byte
}

type fakeBroker struct {
	mu                sync.Mutex
	declaredQueues    []communication.QueueDeclarationConfig
	declaredExchanges []communication.ExchangeDeclarationConfig
	messages          []publishedMessage
	failAfter         int
	closed            bool
}

func (fb *fakeBroker) DeclareNonAnonymousQueues(queuesConfig []communication.QueueDeclarationConfig) error {
	fb.declaredQueues = append(fb.declaredQueues, queuesConfig...)
	return nil
}

func (fb *fakeBroker) DeclareExchanges(exchangesConfig []communication.ExchangeDeclarationConfig) error {
	fb.declaredExchanges = append(fb.declaredExchanges, exchangesConfig...)
	return nil
}

func (fb *fakeBroker) publish(message publishedMessage) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.failAfter > 0 && len(fb.messages) >= fb.failAfter {
		return errors.New("channel closed")
	}
	fb.messages = append(fb.messages, message)
	return nil
}

func (fb *fakeBroker) PublishMessageInQueue(_ context.Context, queueName string, message []byte, _ string) error {
	return fb.publish(publishedMessage{queue: queueName, body: message})
}

func (fb *fakeBroker) PublishMessageInExchange(_ context.Context, exchange string, routingKey string, message []byte, _ string) error {
	return fb.publish(publishedMessage{exchange: exchange, routingKey: routingKey, body: message})
}

func (fb *fakeBroker) Close() error {
	fb.closed = true
	return nil
}

func (fb *fakeBroker) count() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.messages)
}

func testConfig() config.PublisherConfig {
	return config.PublisherConfig{
		Sender:  "dashboard",
		Queue:   communication.QueueDeclarationConfig{Name: "dashboard-tables", Durable: true},
		Views:   []string{"kpis", "summary"},
		Timeout: time.Second,
	}
}

func testSession(t *testing.T) *session.Session {
	start := time.Date(2025, 10, 1, 8, 15, 0, 0, time.UTC)
	records := []trip.RawTrip{
		{RideID: "1", BikeType: "classic_bike", UserType: "member", StartedAt: start, EndedAt: start.Add(30 * time.Minute)},
		{RideID: "2", BikeType: "electric_bike", UserType: "casual", StartedAt: start.Add(time.Hour), EndedAt: start.Add(time.Hour + 12*time.Minute)},
	}
	s := session.New(func() (*loader.Dataset, error) {
		return &loader.Dataset{Source: "fake.csv", Available: true, Records: records}, nil
	}, aggregator.Options{})
	_, err := s.Load()
	require.NoError(t, err)
	return s
}

func TestDeclareQueues(t *testing.T) {
	broker := &fakeBroker{}
	publisherConfig := testConfig()
	publisherConfig.Exchange = communication.ExchangeDeclarationConfig{Name: "tables", Type: "topic"}

	p := New(broker, publisherConfig, queryhandlers.Options{})
	require.NoError(t, p.DeclareQueues())

	require.Len(t, broker.declaredQueues, 1)
	assert.Equal(t, "dashboard-tables", broker.declaredQueues[0].Name)
	require.Len(t, broker.declaredExchanges, 1)
	assert.Equal(t, "tables", broker.declaredExchanges[0].Name)

	require.NoError(t, p.Close())
	assert.True(t, broker.closed)
}

func TestPublishSession(t *testing.T) {
	broker := &fakeBroker{}
	s := testSession(t)
	p := New(broker, testConfig(), queryhandlers.Options{})

	sent, err := p.PublishSession(context.Background(), s)
	require.NoError(t, err)

	tableNames := aggregator.TableNames()
	assert.Equal(t, len(tableNames)+2, sent)
	require.Len(t, broker.messages, sent+1)

	for idx, tableName := range tableNames {
		var response queryresponse.QueryResponse
		require.NoError(t, json.Unmarshal(broker.messages[idx].body, &response))
		assert.Equal(t, tableName.String(), response.GetQueryID())
		assert.Equal(t, queryresponse.QueryResponseType, response.GetMetadata().GetType())
		assert.Equal(t, s.Info().ID, response.GetMetadata().GetSessionID())
		assert.Equal(t, "dashboard-tables", broker.messages[idx].queue)
	}

	var kpis queryresponse.QueryResponse
	require.NoError(t, json.Unmarshal(broker.messages[len(tableNames)].body, &kpis))
	assert.Equal(t, "kpis", kpis.GetQueryID())

	var eofData eof.EOFData
	require.NoError(t, json.Unmarshal(broker.messages[sent].body, &eofData))
	assert.Equal(t, eof.EOFType, eofData.GetMetadata().GetType())
	assert.Equal(t, sent, eofData.Count)
	assert.Equal(t, eof.GetEOFString("dashboard", s.Info().ID), eofData.GetMetadata().GetMessage())
}

func TestPublishInExchange(t *testing.T) {
	broker := &fakeBroker{}
	publisherConfig := testConfig()
	publisherConfig.Views = nil
	publisherConfig.Exchange = communication.ExchangeDeclarationConfig{Name: "tables", Type: "direct"}
	publisherConfig.RoutingKey = "dashboard"

	p := New(broker, publisherConfig, queryhandlers.Options{})
	_, err := p.Publish(context.Background(), "session-1", aggregator.Build(nil, aggregator.Options{}), nil)
	require.NoError(t, err)

	for _, message := range broker.messages {
		assert.Equal(t, "tables", message.exchange)
		assert.Equal(t, "dashboard", message.routingKey)
		assert.Empty(t, message.queue)
	}
}

func TestPublishStopsOnError(t *testing.T) {
	broker := &fakeBroker{failAfter: 2}
	p := New(broker, testConfig(), queryhandlers.Options{})

	sent, err := p.Publish(context.Background(), "session-1", aggregator.Build(nil, aggregator.Options{}), nil)
	assert.Error(t, err)
	assert.Equal(t, 2, sent)
	assert.Len(t, broker.messages, 2)
}

func TestPublishUnknownView(t *testing.T) {
	broker := &fakeBroker{}
	publisherConfig := testConfig()
	publisherConfig.Views = []string{"not_a_view"}
	p := New(broker, publisherConfig, queryhandlers.Options{})

	_, err := p.Publish(context.Background(), "session-1", aggregator.Build(nil, aggregator.Options{}), nil)
	assert.ErrorIs(t, err, queryhandlers.ErrUnknownView)
}

func TestScheduler(t *testing.T) {
	broker := &fakeBroker{}
	s := testSession(t)
	p := New(broker, testConfig(), queryhandlers.Options{})

	scheduler, err := NewScheduler(context.Background(), "@every 1s", p, s)
	require.NoError(t, err)
	scheduler.Start()
	defer scheduler.Stop()

	assert.Eventually(t, func() bool { return broker.count() > 0 }, 5*time.Second, 50*time.Millisecond)
}

func TestSchedulerInvalidSpec(t *testing.T) {
	p := New(&fakeBroker{}, testConfig(), queryhandlers.Options{})
	_, err := NewScheduler(context.Background(), "every once in a while", p, nil)
	assert.Error(t, err)
}
