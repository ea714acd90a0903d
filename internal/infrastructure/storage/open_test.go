package storage

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/sngm3741/secucheck/api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		name    string
		cfg     config.Config
		want    string
		wantErr string
	}{
		{name: "file by default", cfg: config.Config{DataDir: filepath.Join(dir, "data")}, want: "file"},
		{name: "memory", cfg: config.Config{StoreDriver: "memory"}, want: "memory"},
		{name: "sqlite", cfg: config.Config{StoreDriver: "sqlite", DatabaseDSN: "file:" + filepath.Join(dir, "s.db")}, want: "sqlite"},
		{name: "unknown", cfg: config.Config{StoreDriver: "cassandra"}, wantErr: "unsupported store driver: cassandra"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.StoreTimeout = 5 * time.Second
			tc.cfg.ServerLog = log.New(io.Discard, "", 0)

			store, err := Open(context.Background(), tc.cfg)
			if tc.wantErr != "" {
				assert.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			defer store.Close(context.Background())
			assert.Equal(t, tc.want, store.Driver)
			assert.NoError(t, store.Repository.Ping(context.Background()))
		})
	}
}
