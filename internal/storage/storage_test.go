package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/config"
	"github.com/MrJamesThe3rd/ledger/internal/kv"
	"github.com/MrJamesThe3rd/ledger/internal/storage"
)

func TestOpen(t *testing.T) {
	type testCase struct {
		name      string
		driver    string
		versioned bool
		wantErr   bool
	}

	tests := []testCase{
		{name: "Memory", driver: config.DriverMemory, versioned: true},
		{name: "File", driver: config.DriverFile, versioned: true},
		{name: "Unknown", driver: "floppy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Storage.Driver = tt.driver
			cfg.Storage.Dir = t.TempDir()

			m, closeFn, err := storage.Open(context.Background(), cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			defer closeFn()

			_, ok := m.(kv.Versioned)
			assert.Equal(t, tt.versioned, ok)

			require.NoError(t, m.Set(context.Background(), "k", []byte("v")))

			got, err := m.Get(context.Background(), "k")
			require.NoError(t, err)
			assert.Equal(t, "v", string(got))
		})
	}
}
