package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Workers: 4, Total: 10 * time.Second}, ""},
		{"minimal", Config{Workers: 1, Total: time.Millisecond}, ""},
		{"zero workers", Config{Workers: 0, Total: time.Second}, "workers"},
		{"negative workers", Config{Workers: -2, Total: time.Second}, "workers"},
		{"zero total", Config{Workers: 1, Total: 0}, "total"},
		{"negative total", Config{Workers: 1, Total: -time.Second}, "total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantErr, cfgErr.Field)
		})
	}
}

func TestWorkerName(t *testing.T) {
	assert.Equal(t, "thread0", workerName(0))
	assert.Equal(t, "thread7", workerName(7))
}
