package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// MQTTPublisher sends events as JSON to <prefix>/<entity>/<action> at QoS 1.
type MQTTPublisher struct {
	client mqtt.Client
	prefix string
}

func NewMQTTPublisher(broker, clientID, prefix string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(publishTimeout)
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("mqtt connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	return newMQTTPublisher(client, prefix), nil
}

func newMQTTPublisher(client mqtt.Client, prefix string) *MQTTPublisher {
	return &MQTTPublisher{client: client, prefix: prefix}
}

func (p *MQTTPublisher) Topic(e Event) string {
	return fmt.Sprintf("%s/%s/%s", p.prefix, e.Entity, e.Action)
}

func (p *MQTTPublisher) Publish(ctx context.Context, e Event) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", e.Entity, err)
	}

	timeout := publishTimeout
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d < timeout {
			timeout = d
		}
	}

	token := p.client.Publish(p.Topic(e), 1, false, payload)
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("publish %s: timed out", p.Topic(e))
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", p.Topic(e), err)
	}
	return nil
}

func (p *MQTTPublisher) Close() { p.client.Disconnect(250) }
