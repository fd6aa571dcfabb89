package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"portal-backend/internal/shared/telemetry"
)

// Subject is the NATS subject enrichment jobs travel on.
const Subject = "portal.jobs"

// NATSQueue publishes and consumes jobs over NATS. Workers join the
// "workers" queue group so each job is delivered to exactly one of them.
type NATSQueue struct {
	conn *nats.Conn
}

// ConnectNATS dials the NATS server with reconnect handling.
func ConnectNATS(url string) (*NATSQueue, error) {
	conn, err := nats.Connect(
		url,
		nats.Name("portal-backend"),
		nats.Timeout(2*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(60),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			fields := map[string]any{}
			if err != nil {
				fields["error"] = err.Error()
			}
			telemetry.Warn("queue.disconnected", fields)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			telemetry.Info("queue.reconnected", map[string]any{"url": nc.ConnectedUrl()})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATSQueue{conn: conn}, nil
}

// Close releases the connection.
func (q *NATSQueue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

// Publish sends one job.
func (q *NATSQueue) Publish(_ context.Context, job Job) error {
	data, err := job.Encode()
	if err != nil {
		return err
	}
	if err := q.conn.Publish(Subject, data); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}

// Subscribe consumes jobs until ctx is cancelled. Handler errors are
// logged; the subscription keeps going.
func (q *NATSQueue) Subscribe(ctx context.Context, handler func(context.Context, Job) error) error {
	sub, err := q.conn.QueueSubscribe(Subject, "workers", func(msg *nats.Msg) {
		if ctx.Err() != nil {
			return
		}
		job, err := DecodeJob(msg.Data)
		if err != nil {
			telemetry.Error("queue.decode", map[string]any{"error": err.Error()})
			return
		}
		if err := handler(ctx, job); err != nil {
			telemetry.Error("queue.handle", map[string]any{
				"kind":  job.Kind,
				"id":    job.ID,
				"error": err.Error(),
			})
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}
	if err := q.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain: %w", err)
	}
	return nil
}
