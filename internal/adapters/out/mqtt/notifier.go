// Package mqtt publishes error status reports to an MQTT broker so operators and
// dashboards learn about locations flagged ERROR without polling the REST API.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"warehouse/internal/core/ports"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

var _ ports.ErrorStatusNotifier = (*Notifier)(nil)

// Notifier implements ports.ErrorStatusNotifier on top of a paho client.
//
// Thread Safety:
//   - Notify is safe for concurrent use; paho serialises the writes.
type Notifier struct {
	client pahomqtt.Client
	cfg    Config
	logger *slog.Logger
}

// Connect dials the broker and returns a ready Notifier.
//
// Example:
//
//	notifier, err := mqtt.Connect(mqtt.Config{
//	    Broker:   "tcp://localhost:1883",
//	    ClientID: "warehouse",
//	    Topic:    "warehouse/locations/error-status",
//	    QoS:      1,
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	defer notifier.Close()
func Connect(cfg Config, logger *slog.Logger) (*Notifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := buildClientOptions(cfg)
	n := &Notifier{cfg: cfg, logger: logger.With("component", "mqtt_notifier")}
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		n.logger.Warn("connection to broker lost", "broker", cfg.Broker, "error", err)
	})
	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		n.logger.Info("connected to broker", "broker", cfg.Broker)
	})

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	n.client = client
	return n, nil
}

// NewNotifier wraps an existing client. The client must already be connected.
func NewNotifier(client pahomqtt.Client, cfg Config, logger *slog.Logger) (*Notifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Notifier{client: client, cfg: cfg, logger: logger.With("component", "mqtt_notifier")}, nil
}

// Notify publishes report as JSON on the configured topic with the retained flag set.
// It gives up when ctx is done or the broker does not acknowledge in time.
func (n *Notifier) Notify(ctx context.Context, report ports.ErrorStatusReport) error {
	if !n.client.IsConnected() {
		return ErrNotConnected
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	token := n.client.Publish(n.cfg.Topic, n.cfg.QoS, true, payload)
	timer := time.NewTimer(defaultPublishTimeout)
	defer timer.Stop()

	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrPublishFailed, ctx.Err())
	case <-timer.C:
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	n.logger.DebugContext(ctx, "error status report published",
		"topic", n.cfg.Topic,
		"locations", len(report.Locations),
	)
	return nil
}

// Close disconnects from the broker after pending publishes drain.
func (n *Notifier) Close() {
	if n.client == nil {
		return
	}
	n.client.Disconnect(defaultDisconnectQuiesce)
}
