package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"bikeshare/aggregator"
	"bikeshare/communication"
	"bikeshare/config"
	"bikeshare/domain/business/queryresponse"
	"bikeshare/domain/entities/eof"
	"bikeshare/domain/entities/trip"
	"bikeshare/queryhandlers"
	"bikeshare/queryhandlers/factory"
	"bikeshare/session"
)

const (
	publisherStr    = "publisher"
	contentTypeJson = "application/json"
)

// Broker the operations of RabbitMQ used to publish. *communication.RabbitMQ implements it
type Broker interface {
	DeclareNonAnonymousQueues(queuesConfig []communication.QueueDeclarationConfig) error
	DeclareExchanges(exchangesConfig []communication.ExchangeDeclarationConfig) error
	PublishMessageInQueue(ctx context.Context, queueName string, message []byte, contentType string) error
	PublishMessageInExchange(ctx context.Context, exchange string, routingKey string, message []byte, contentType string) error
	Close() error
}

// Publisher sends the tables and views of a session to RabbitMQ. Each publication is a
// sequence of QueryResponse messages followed by one EOF
type Publisher struct {
	broker       Broker
	config       config.PublisherConfig
	viewsOptions queryhandlers.Options
}

func New(broker Broker, publisherConfig config.PublisherConfig, viewsOptions queryhandlers.Options) *Publisher {
	return &Publisher{
		broker:       broker,
		config:       publisherConfig,
		viewsOptions: viewsOptions.WithDefaults(),
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", publisherStr, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", publisherStr, method, message)
}

// DeclareQueues declares the output queue and, if configured, the output exchange
func (p *Publisher) DeclareQueues() error {
	err := p.broker.DeclareNonAnonymousQueues([]communication.QueueDeclarationConfig{p.config.Queue})
	if err != nil {
		log.Error(getLogMessage("DeclareQueues", "error declaring queues", err))
		return err
	}

	if p.config.Exchange.Name != "" {
		err = p.broker.DeclareExchanges([]communication.ExchangeDeclarationConfig{p.config.Exchange})
		if err != nil {
			log.Error(getLogMessage("DeclareQueues", "error declaring exchanges", err))
			return err
		}
	}

	log.Info(getLogMessage("DeclareQueues", "all queues were declared correctly", nil))
	return nil
}

// PublishSession publishes every table of the current snapshot, the configured views over its
// trips and the EOF. It returns the amount of messages sent before the EOF
func (p *Publisher) PublishSession(ctx context.Context, s *session.Session) (int, error) {
	snapshot := s.Snapshot()
	return p.Publish(ctx, snapshot.ID, snapshot.Tables, snapshot.Trips)
}

// Publish publishes the tables, the configured views over trips and the EOF
func (p *Publisher) Publish(ctx context.Context, sessionID string, tables *aggregator.Tables, trips []trip.Trip) (int, error) {
	tablesSent, err := p.PublishTables(ctx, sessionID, tables)
	if err != nil {
		return tablesSent, err
	}

	viewsSent, err := p.PublishViews(ctx, sessionID, trips)
	sent := tablesSent + viewsSent
	if err != nil {
		return sent, err
	}

	if err := p.PublishEOF(ctx, sessionID, sent); err != nil {
		return sent, err
	}

	log.Info(getLogMessage("Publish", fmt.Sprintf("session %s published: %v messages", sessionID, sent), nil))
	return sent, nil
}

// PublishTables sends one QueryResponse per precomputed table, in TableNames order
func (p *Publisher) PublishTables(ctx context.Context, sessionID string, tables *aggregator.Tables) (int, error) {
	sent := 0
	for _, tableName := range aggregator.TableNames() {
		data, err := tables.Get(tableName)
		if err != nil {
			return sent, err
		}

		if err := p.publishResponse(ctx, sessionID, tableName.String(), data); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// PublishViews sends one QueryResponse per configured view
func (p *Publisher) PublishViews(ctx context.Context, sessionID string, trips []trip.Trip) (int, error) {
	sent := 0
	for _, viewName := range p.config.Views {
		data, err := factory.GenerateView(viewName, p.viewsOptions, trips)
		if err != nil {
			log.Error(getLogMessage("PublishViews", "error generating view "+viewName, err))
			return sent, err
		}

		if err := p.publishResponse(ctx, sessionID, viewName, data); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// PublishEOF sends the EOF of the session with the amount of messages sent before it
func (p *Publisher) PublishEOF(ctx context.Context, sessionID string, count int) error {
	eofBytes, err := json.Marshal(eof.NewEOF(sessionID, p.config.Sender, count))
	if err != nil {
		return fmt.Errorf("error marshalling EOF: %w", err)
	}
	return p.publishMessage(ctx, eofBytes)
}

func (p *Publisher) publishResponse(ctx context.Context, sessionID string, queryID string, data any) error {
	response, err := queryresponse.NewQueryResponse(sessionID, queryID, p.config.Sender, data)
	if err != nil {
		return err
	}

	responseBytes, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("error marshalling response of query %s: %w", queryID, err)
	}

	err = p.publishMessage(ctx, responseBytes)
	if err != nil {
		log.Error(getLogMessage("publishResponse", "error publishing "+queryID, err))
		return err
	}
	log.Debug(getLogMessage("publishResponse", "published "+queryID, nil))
	return nil
}

func (p *Publisher) publishMessage(ctx context.Context, message []byte) error {
	publishCtx := ctx
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		publishCtx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	var err error
	if p.config.Exchange.Name != "" {
		err = p.broker.PublishMessageInExchange(publishCtx, p.config.Exchange.Name, p.config.RoutingKey, message, contentTypeJson)
	} else {
		err = p.broker.PublishMessageInQueue(publishCtx, p.config.Queue.Name, message, contentTypeJson)
	}

	if err != nil {
		return fmt.Errorf("error publishing message: %w", err)
	}
	return nil
}

// Close closes the underlying broker
func (p *Publisher) Close() error {
	return p.broker.Close()
}
