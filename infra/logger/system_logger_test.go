package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestConfig() SystemLoggerConfig {
	return SystemLoggerConfig{
		EnableConsole:    false,
		EnableOpenSearch: false,
		MinLevel:         LevelDebug,
		Service:          "payu-console",
		Version:          "1.0.0",
		Environment:      "test",
	}
}

func TestNewSystemLogger(t *testing.T) {
	logger := NewSystemLogger(nil, defaultTestConfig())

	require.NotNil(t, logger)
	assert.Equal(t, "payu-console", logger.service)
	assert.False(t, logger.enableOpenSearch, "opensearch must stay off without a backend")
}

func TestSystemLogger_ShouldLog(t *testing.T) {
	tests := []struct {
		name     string
		minLevel LogLevel
		level    LogLevel
		expected bool
	}{
		{"debug_at_debug", LevelDebug, LevelDebug, true},
		{"debug_at_info", LevelInfo, LevelDebug, false},
		{"error_at_info", LevelInfo, LevelError, true},
		{"warn_at_error", LevelError, LevelWarn, false},
		{"fatal_always", LevelError, LevelFatal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultTestConfig()
			cfg.MinLevel = tt.minLevel
			logger := NewSystemLogger(nil, cfg)

			assert.Equal(t, tt.expected, logger.shouldLog(tt.level))
		})
	}
}

func TestSystemLogger_ExtractComponent(t *testing.T) {
	logger := NewSystemLogger(nil, defaultTestConfig())

	tests := []struct {
		name     string
		file     string
		expected string
	}{
		{
			name:     "module_package_file",
			file:     "/home/dev/payu-console/checkout/hash.go",
			expected: "checkout/hash.go",
		},
		{
			name:     "nested_infra_file",
			file:     "/home/dev/payu-console/infra/opensearch/client.go",
			expected: "infra/opensearch",
		},
		{
			name:     "outside_module",
			file:     "/usr/lib/go/src/net/http/server.go",
			expected: "http",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, logger.extractComponent(tt.file))
		})
	}
}

func TestSystemLogger_LogLevels(t *testing.T) {
	logger := NewSystemLogger(nil, defaultTestConfig())

	// Console and OpenSearch are both disabled; the calls must still be safe
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", assert.AnError)
}

func TestContextLogger(t *testing.T) {
	logger := NewSystemLogger(nil, defaultTestConfig())

	cl := logger.WithContext(LogContext{Flow: "split"})
	cl.SetRequestID("req-12345678").AddField("txnid", "txn_split_1")

	assert.Equal(t, "split", cl.context.Flow)
	assert.Equal(t, "req-12345678", cl.context.RequestID)
	assert.Equal(t, "txn_split_1", cl.context.Fields["txnid"])

	cl.SetFlow("bankoffer")
	assert.Equal(t, "bankoffer", cl.context.Flow)

	// Logging through the context logger must not panic
	cl.Info("attempt built")
	cl.Error("attempt failed", assert.AnError)
}

func TestGlobalLogger_Fallback(t *testing.T) {
	logger := GetGlobalLogger()
	require.NotNil(t, logger)

	// Convenience functions route through the global instance
	Info("global info")
	Warn("global warn")
	Debug("global debug")

	cl := WithFlow("tpv")
	require.NotNil(t, cl)
	assert.Equal(t, "tpv", cl.context.Flow)

	rl := WithRequest("upiotm", "req-1")
	assert.Equal(t, "upiotm", rl.context.Flow)
	assert.Equal(t, "req-1", rl.context.RequestID)
}
