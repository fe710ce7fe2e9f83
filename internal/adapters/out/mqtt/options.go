package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	// defaultConnectTimeout is the maximum time to wait for the initial connection.
	defaultConnectTimeout = 10 * time.Second

	// defaultPublishTimeout is the maximum time to wait for a publish acknowledgment.
	defaultPublishTimeout = 5 * time.Second

	// defaultDisconnectQuiesce is the time in milliseconds granted to pending operations.
	defaultDisconnectQuiesce = 1000

	defaultKeepAlive = 60 * time.Second

	maxQoS = 2
)

// Config holds the broker settings of the error status notifier.
type Config struct {
	// Broker is the broker URL, e.g. tcp://localhost:1883.
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
}

// Validate checks the settings before a connection is attempted.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("%w: broker is empty", ErrConnectionFailed)
	}
	if c.Topic == "" {
		return ErrInvalidTopic
	}
	if c.QoS > maxQoS {
		return ErrInvalidQoS
	}
	return nil
}

// buildClientOptions configures clean sessions and auto-reconnect. Reports are retained on
// the broker, so a reconnecting subscriber still sees the latest one.
func buildClientOptions(cfg Config) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)
	return opts
}
