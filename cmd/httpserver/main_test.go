package main

import (
	"context"
	"filmorate/pkg/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StartupErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown storage",
			env:     map[string]string{"STORAGE": "bogus"},
			wantErr: "cannot load config: load config error: unknown storage \"bogus\"",
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"STORAGE": "memory", "LOG_LEVEL": "loud"},
			wantErr: "cannot init logger",
		},
		{
			name:    "dynamodb without region",
			env:     map[string]string{"STORAGE": "dynamodb", "DDB_REGION": ""},
			wantErr: "cannot init dynamodb storage: dynamodb: region is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SENTRY_DSN", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := run()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitServices_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageMemory}

	s, closeStorage, err := initServices(context.Background(), cfg)

	require.NoError(t, err)
	defer closeStorage()
	assert.NotNil(t, s.films)
	assert.NotNil(t, s.users)
	assert.Nil(t, s.ping)

	genres, err := s.genres.ListGenres(context.Background())
	require.NoError(t, err)
	assert.Len(t, genres, 6)
}
