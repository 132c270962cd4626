package s3_test

import (
	"testing"

	"campusroom/config"
	"campusroom/infras/otel/mocks"
	"campusroom/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "rooms/a.png", s3.ObjectKey("rooms", "a.png"))
	assert.Equal(t, "rooms/a.png", s3.ObjectKey("/rooms/", "a.png"))
	assert.Equal(t, "a.png", s3.ObjectKey("", "a.png"))
}

func TestKeyFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "campus"
	cfg.External.S3.PublicDomain = "https://cdn.campus.test/"

	store := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{url: "https://cdn.campus.test/rooms/a.png", want: "rooms/a.png", wantOK: true},
		{url: "https://elsewhere.test/rooms/a.png"},
		{url: "https://cdn.campus.test/"},
		{url: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			key, ok := store.KeyFromURL(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, key)
		})
	}
}
