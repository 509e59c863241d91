package rabbitmq

import (
	"encoding/json"
	"testing"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	msg, err := NewPublishing("meal.created", map[string]string{"mealId": "m-1"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "meal.created", msg.Type)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.False(t, msg.Timestamp.IsZero())

	var body map[string]string
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "m-1", body["mealId"])
}

func TestNewPublishing_Unmarshalable(t *testing.T) {
	_, err := NewPublishing("meal.created", make(chan int))
	assert.Error(t, err)
}

func TestLogEvent(t *testing.T) {
	assert.NoError(t, LogEvent(amqp.Delivery{RoutingKey: "meal.deleted", Body: []byte(`{"event":"meal.deleted"}`)}))
	assert.Error(t, LogEvent(amqp.Delivery{Body: []byte("not json")}))
}

func TestPublishEvent_WithoutChannel(t *testing.T) {
	c := &Client{}
	assert.Error(t, c.PublishEvent("meal.created", nil))
	assert.Error(t, c.ConsumeEvents(LogEvent))
	assert.NoError(t, c.Close())
}
