package observer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/iamruinous/pica-emulator/internal/config"
)

// MQTT publishes each event as a retained-off JSON message to a topic
// on a broker.
type MQTT struct {
	broker string
	topic  string

	mu      sync.Mutex
	client  mqtt.Client
	enabled bool
}

// NewMQTT creates a new MQTT publish sink and connects immediately so
// that a bad broker address is reported at startup rather than on the
// first event.
func NewMQTT(cfg config.ObserverConfig) (*MQTT, error) {
	broker, _ := cfg.Options["broker"].(string)
	if broker == "" {
		return nil, fmt.Errorf("mqtt broker is required")
	}
	topic := "pica/events"
	if t, ok := cfg.Options["topic"].(string); ok && t != "" {
		topic = t
	}
	clientID := fmt.Sprintf("pica-emulator-observer-%d", time.Now().UnixNano())
	if c, ok := cfg.Options["client_id"].(string); ok && c != "" {
		clientID = c
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	if u, ok := cfg.Options["username"].(string); ok {
		opts.SetUsername(u)
	}
	if p, ok := cfg.Options["password"].(string); ok {
		opts.SetPassword(p)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout")
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return &MQTT{
		broker:  broker,
		topic:   topic,
		client:  client,
		enabled: cfg.Enabled,
	}, nil
}

// Send publishes an event to the configured topic.
func (m *MQTT) Send(_ context.Context, evt *PicaEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil || !client.IsConnected() {
		return fmt.Errorf("mqtt client not connected")
	}

	token := client.Publish(m.topic, 0, false, data)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("mqtt publish timeout")
	}
	return token.Error()
}

// Close disconnects the MQTT client.
func (m *MQTT) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client != nil && m.client.IsConnected() {
		m.client.Disconnect(250)
	}
	return nil
}

// Name returns the sink identifier.
func (m *MQTT) Name() string { return fmt.Sprintf("mqtt:%s/%s", m.broker, m.topic) }

// Enabled returns whether this sink is enabled.
func (m *MQTT) Enabled() bool { return m.enabled }
