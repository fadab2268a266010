package s3_test

import (
	"context"
	"hotelops/config"
	"hotelops/infras/otel/mocks"
	"hotelops/infras/s3"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.External.S3.APIEndpoint = "https://storage.example.com"
	cfg.External.S3.PublicDomain = "https://cdn.hotel.test/"

	return cfg
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "https://cdn.hotel.test/receipts/s-1.txt", s3.ObjectURL("https://cdn.hotel.test/", "/receipts/s-1.txt"))
}

func TestGetObjectNameFromURL(t *testing.T) {
	svc := s3.New(newConfig(), mocks.NewOtel())

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "public domain", url: "https://cdn.hotel.test/receipts/s-1.txt", expected: "receipts/s-1.txt"},
		{name: "api endpoint", url: "https://storage.example.com/hotel/receipts/s-1.txt", expected: "receipts/s-1.txt"},
		{name: "foreign url", url: "https://elsewhere.test/receipts/s-1.txt", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.GetObjectNameFromURL("hotel", tt.url))
		})
	}
}

func TestUploadWithoutBucket(t *testing.T) {
	svc := s3.New(newConfig(), mocks.NewOtel())

	_, err := svc.UploadFileBytes(context.Background(), "", "receipts", "s-1.txt", "text/plain", []byte("receipt"))

	assert.Error(t, err)
}
