// Package notify pushes committed assignments to field clients over MQTT so
// ground stations learn about new bindings without polling the roster.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/skyops/dronecoord/core/assign"
	"github.com/skyops/dronecoord/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT notifier.
type Config struct {
	Enabled   bool   `json:"enabled"`
	Broker    string `json:"broker"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Topic     string `json:"topic"`
	QoS       byte   `json:"qos"`
	TimeoutMS int    `json:"timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "dronecoord-notifier"
	}
	if c.Topic == "" {
		c.Topic = "ops/assignments"
	}
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 5000
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("broker is required when the notifier is enabled")
	}
	return nil
}

// pahoClient is the slice of the Paho API the notifier uses; tests inject a
// fake implementation.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoNotifier implements assign.Notifier using Eclipse Paho.
type PahoNotifier struct {
	cli     pahoClient
	topic   string
	qos     byte
	timeout time.Duration
	log     logger.Logger
}

// NewPahoNotifier connects to the broker and returns the notifier.
func NewPahoNotifier(cfg Config) (*PahoNotifier, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("notify config: %w", err)
	}
	log := logger.New("assignment-notifier")
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}

	cli := newMQTTClient(opts)
	n := &PahoNotifier{
		cli:     cli,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		log:     log,
	}
	token := cli.Connect()
	if !token.WaitTimeout(n.timeout) {
		return nil, fmt.Errorf("mqtt connect timeout after %s", n.timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return n, nil
}

// NotifyAssigned publishes the notice as JSON on the assignments topic.
func (n *PahoNotifier) NotifyAssigned(ctx context.Context, notice assign.Notice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	token := n.cli.Publish(n.topic, n.qos, false, payload)
	if !token.WaitTimeout(n.timeout) {
		return fmt.Errorf("publish timeout after %s", n.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	n.log.Debugw("assignment published", map[string]any{
		"mission_id": notice.MissionID,
		"pilot":      notice.Pilot,
		"drone":      notice.Drone,
	})
	_ = ctx
	return nil
}

// Close disconnects from the broker.
func (n *PahoNotifier) Close() {
	if n.cli.IsConnected() {
		n.cli.Disconnect(250)
	}
}
