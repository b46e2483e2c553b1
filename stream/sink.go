package stream

import (
	"encoding/json"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/matt-g-everett/animseq/style"
)

// Sink presents the styles an adapter computes.
type Sink interface {
	Render(s style.Props)
}

// SinkFunc adapts a render function to a Sink.
type SinkFunc func(s style.Props)

// Render calls f(s).
func (f SinkFunc) Render(s style.Props) {
	f(s)
}

type nopSink struct{}

func (nopSink) Render(style.Props) {}

// Publisher sends a payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

type mqttPublisher struct {
	client mqtt.Client
	qos    byte
}

// NewMQTTPublisher publishes through an MQTT client, waiting for each
// message to be delivered at the given QoS.
func NewMQTTPublisher(client mqtt.Client, qos byte) Publisher {
	return &mqttPublisher{client: client, qos: qos}
}

func (p *mqttPublisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, p.qos, false, payload)
	token.Wait()
	return token.Error()
}

// MQTTSink publishes each rendered style as JSON on a topic.
type MQTTSink struct {
	publisher Publisher
	topic     string
}

// NewMQTTSink creates a sink publishing to topic.
func NewMQTTSink(publisher Publisher, topic string) *MQTTSink {
	return &MQTTSink{publisher: publisher, topic: topic}
}

// Render publishes s. Failures are logged and dropped.
func (m *MQTTSink) Render(s style.Props) {
	b, err := json.Marshal(s)
	if err != nil {
		log.Printf("stream: encoding style for %s: %v", m.topic, err)
		return
	}
	if err := m.publisher.Publish(m.topic, b); err != nil {
		log.Printf("stream: publishing style to %s: %v", m.topic, err)
	}
}
