package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	mqtt.Token
	done bool
	err  error
}

func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeClient struct {
	mqtt.Client
	token *fakeToken
	sent  []published
	gone  bool
}

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	c.sent = append(c.sent, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(uint) { c.gone = true }

func TestMQTTPublisher_Publish(t *testing.T) {
	client := &fakeClient{token: &fakeToken{done: true}}
	p := newMQTTPublisher(client, "corrosion")

	err := p.Publish(context.Background(), Event{Entity: "measurement", Action: Created, ID: 12, Data: map[string]float64{"corrosionRate": 4.5}})
	require.NoError(t, err)
	require.Len(t, client.sent, 1)
	assert.Equal(t, "corrosion/measurement/created", client.sent[0].topic)
	assert.Equal(t, byte(1), client.sent[0].qos)

	var got Event
	require.NoError(t, json.Unmarshal(client.sent[0].payload, &got))
	assert.Equal(t, int64(12), got.ID)
	assert.False(t, got.At.IsZero())

	p.Close()
	assert.True(t, client.gone)
}

func TestMQTTPublisher_Timeout(t *testing.T) {
	p := newMQTTPublisher(&fakeClient{token: &fakeToken{done: false}}, "corrosion")
	err := p.Publish(context.Background(), Event{Entity: "tml", Action: Deleted, ID: 1})
	assert.ErrorContains(t, err, "timed out")
}

func TestMQTTPublisher_BrokerError(t *testing.T) {
	boom := errors.New("not authorized")
	p := newMQTTPublisher(&fakeClient{token: &fakeToken{done: true, err: boom}}, "corrosion")
	err := p.Publish(context.Background(), Event{Entity: "tml", Action: Updated, ID: 1})
	assert.ErrorIs(t, err, boom)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	p.Close()
}
