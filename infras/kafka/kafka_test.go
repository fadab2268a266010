package kafka_test

import (
	"context"
	"hotelops/config"
	"hotelops/infras/kafka"
	"hotelops/infras/otel/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusChanged struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{
		Key:   "b-1",
		Type:  "booking.status_changed",
		Value: statusChanged{BookingID: "b-1", Status: "checked_in"},
	}

	encoded, err := msg.ToKafkaMessage(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []byte("b-1"), encoded.Key)
	require.Len(t, encoded.Headers, 1)
	assert.Equal(t, "booking.status_changed", string(encoded.Headers[0].Value))

	decoded, err := kafka.DecodeKafkaMessage[statusChanged](encoded)
	require.NoError(t, err)
	assert.Equal(t, "b-1", decoded.Key)
	assert.Equal(t, "booking.status_changed", decoded.Type)
	assert.Equal(t, statusChanged{BookingID: "b-1", Status: "checked_in"}, decoded.Value)
}

func TestNewWithoutBrokersDropsMessages(t *testing.T) {
	client := kafka.New(&config.Config{}, mocks.NewOtel())

	err := client.SendMessages(context.Background(), "hotelops.booking", kafka.Message{Key: "b-1"})

	assert.NoError(t, err)
	assert.NoError(t, client.Close())
}
