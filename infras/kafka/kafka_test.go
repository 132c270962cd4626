package kafka_test

import (
	"context"
	"testing"

	"campusroom/config"
	"campusroom/infras/kafka"
	"campusroom/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToKafkaMessage(t *testing.T) {
	message := kafka.Message{Key: "res-1", Value: map[string]string{"type": "reservation.created"}}

	msg, err := message.ToKafkaMessage("campusroom.reservation")

	require.NoError(t, err)
	assert.Equal(t, "campusroom.reservation", msg.Topic)
	assert.Equal(t, []byte("res-1"), msg.Key)
	assert.JSONEq(t, `{"type":"reservation.created"}`, string(msg.Value))
}

func TestToKafkaMessageRejectsUnencodableValue(t *testing.T) {
	message := kafka.Message{Key: "res-1", Value: make(chan int)}

	_, err := message.ToKafkaMessage("campusroom.reservation")

	assert.Error(t, err)
}

func TestDisabledClientDropsMessages(t *testing.T) {
	client := kafka.New(&config.Config{}, mocks.NewOtel())

	err := client.SendMessages(context.Background(), "campusroom.reservation", kafka.Message{Key: "res-1", Value: "x"})

	assert.NoError(t, err)
	assert.NoError(t, client.Close())
}
