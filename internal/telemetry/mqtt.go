// Package telemetry mirrors playground readings and gestures to an MQTT
// broker as JSON.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"sensor-playground/internal/gesture"
	"sensor-playground/internal/location"
	"sensor-playground/internal/sensors"
)

const publishTimeout = 2 * time.Second

// Reading is the payload published for each sensor value.
type Reading struct {
	Kind   string    `json:"kind"`
	Value  float64   `json:"value"`
	Unit   string    `json:"unit"`
	At     time.Time `json:"at"`
	Source string    `json:"source"`
}

// GestureEvent is the payload published for each gesture log entry.
type GestureEvent struct {
	Entry string    `json:"entry"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	At    time.Time `json:"at"`
}

// Publisher sends playground events to MQTT topics under a common prefix:
// <prefix>/sensors/<kind>, <prefix>/location and <prefix>/gestures.
type Publisher struct {
	client mqtt.Client
	prefix string
	logger *slog.Logger
}

// Connect dials the broker and returns a publisher.
func Connect(broker, clientID, prefix string, logger *slog.Logger) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect MQTT broker %s: %w", broker, token.Error())
	}
	logger.Info("connected to MQTT broker", "broker", broker, "client_id", clientID)

	return New(client, prefix, logger), nil
}

// New wraps an existing client.
func New(client mqtt.Client, prefix string, logger *slog.Logger) *Publisher {
	return &Publisher{client: client, prefix: prefix, logger: logger}
}

// PublishReading publishes one sensor value, retained so late subscribers
// see the latest value.
func (p *Publisher) PublishReading(r sensors.ReadingMsg) error {
	return p.publish(p.prefix+"/sensors/"+r.Kind.String(), true, Reading{
		Kind:   r.Kind.String(),
		Value:  r.Value,
		Unit:   r.Kind.Unit(),
		At:     r.At,
		Source: r.Source,
	})
}

// PublishPlace publishes the resolved city and state, retained.
func (p *Publisher) PublishPlace(msg location.PlaceMsg) error {
	return p.publish(p.prefix+"/location", true, location.Place{City: msg.City, State: msg.State})
}

// PublishGesture publishes one gesture log entry with the ball position.
func (p *Publisher) PublishGesture(entry string, pos gesture.Point, at time.Time) error {
	return p.publish(p.prefix+"/gestures", false, GestureEvent{Entry: entry, X: pos.X, Y: pos.Y, At: at})
}

func (p *Publisher) publish(topic string, retained bool, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}

	token := p.client.Publish(topic, 0, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s: timed out after %s", topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	p.logger.Debug("published", "topic", topic, "bytes", len(payload))
	return nil
}

// Close disconnects from the broker, allowing in-flight messages 250ms.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
