// Package publish streams estimate records to external subscribers
// over a nanomsg PUB socket.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pub"

	// Register all transports
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/dd0wney/cluso-streamcount/pkg/logging"
	"github.com/dd0wney/cluso-streamcount/pkg/pipeline"
	"github.com/dd0wney/cluso-streamcount/pkg/pubsub"
)

// Record is the wire format for one published estimate.
type Record struct {
	RunID     string    `json:"run_id"`
	Round     int       `json:"round"`
	Triangles int64     `json:"triangles"`
	Timestamp time.Time `json:"ts"`
}

// Publisher owns a PUB socket and serializes estimates onto it.
type Publisher struct {
	sock  mangos.Socket
	log   logging.Logger
	runID string
}

// NewPublisher opens a PUB socket listening on addr (any mangos
// transport URL: tcp://, ipc://, inproc://).
func NewPublisher(addr, runID string, log logging.Logger) (*Publisher, error) {
	if log == nil {
		log = logging.DefaultLogger()
	}

	sock, err := pub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to create pub socket: %w", err)
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return &Publisher{
		sock:  sock,
		log:   log.With(logging.Component("publisher")),
		runID: runID,
	}, nil
}

// PublishEstimate sends one estimate record as a JSON line.
func (p *Publisher) PublishEstimate(est pipeline.Estimate) error {
	rec := Record{
		RunID:     p.runID,
		Round:     est.Round,
		Triangles: est.Triangles,
		Timestamp: time.Now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal estimate record: %w", err)
	}
	if err := p.sock.Send(data); err != nil {
		return fmt.Errorf("failed to publish estimate: %w", err)
	}
	return nil
}

// Attach subscribes to the bus's estimate topic and forwards every
// record until the context is cancelled or the bus shuts down.
func (p *Publisher) Attach(ctx context.Context, bus *pubsub.PubSub) {
	sub := bus.Subscribe(ctx, pipeline.TopicEstimates)
	if sub == nil {
		return
	}
	go func() {
		for msg := range sub.Channel() {
			est, ok := msg.(pipeline.Estimate)
			if !ok {
				continue
			}
			if err := p.PublishEstimate(est); err != nil {
				p.log.Warn("publish failed", logging.Round(est.Round), logging.Error(err))
			}
		}
	}()
}

// Close shuts the socket down.
func (p *Publisher) Close() error {
	return p.sock.Close()
}
