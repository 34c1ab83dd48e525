// Package mqtt publishes finished night plans to an observatory
// automation bus so downstream consumers (dome control, dashboards)
// can react without polling report files.
package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Config defines the connection parameters for the plan publisher.
type Config struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	Broker         string `json:"broker" yaml:"broker"`
	ClientID       string `json:"client_id" yaml:"client_id"`
	Username       string `json:"username" yaml:"username"`
	Password       string `json:"password" yaml:"password"`
	Topic          string `json:"topic" yaml:"topic"`
	QoS            byte   `json:"qos" yaml:"qos"`
	Retained       bool   `json:"retained" yaml:"retained"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "transitplan"
	}
	if c.Topic == "" {
		c.Topic = "observatory/nightplan"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 5
	}
}

// Validate checks mandatory fields when publishing is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required when publishing is enabled")
	}
	if c.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2")
	}
	return nil
}

// Publisher sends a serialized night plan to the bus.
type Publisher interface {
	PublishPlan(payload []byte) error
	Close()
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli     paho.Client
	topic   string
	qos     byte
	retain  bool
	timeout time.Duration
}

// NewPahoPublisher connects to the broker described by cfg.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password)
	cli := paho.NewClient(opts)
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	tok := cli.Connect()
	if !tok.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt connect timeout after %s", timeout)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &PahoPublisher{
		cli:     cli,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		retain:  cfg.Retained,
		timeout: timeout,
	}, nil
}

// PublishPlan sends the payload to the configured topic.
func (p *PahoPublisher) PublishPlan(payload []byte) error {
	tok := p.cli.Publish(p.topic, p.qos, p.retain, payload)
	if !tok.WaitTimeout(p.timeout) {
		return fmt.Errorf("mqtt publish timeout after %s", p.timeout)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}
