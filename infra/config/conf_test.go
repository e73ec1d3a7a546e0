package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGateway_Defaults(t *testing.T) {
	gw := NewGateway()

	assert.Equal(t, "a4vGC2", gw.DefaultKey)
	assert.Equal(t, "hKvGJP28d2ZUuCRz5BnDag58QBdCxBli", gw.DefaultSalt)
	assert.Equal(t, "https://test.payu.in/_payment", gw.EndpointURL)
}

func TestNewGateway_EnvOverride(t *testing.T) {
	t.Setenv("PAYU_MERCHANT_KEY", "liveKey")
	t.Setenv("PAYU_MERCHANT_SALT", "liveSalt")
	t.Setenv("PAYU_ENDPOINT_URL", "https://secure.payu.in/_payment")

	gw := NewGateway()

	assert.Equal(t, "liveKey", gw.DefaultKey)
	assert.Equal(t, "liveSalt", gw.DefaultSalt)
	assert.Equal(t, "https://secure.payu.in/_payment", gw.EndpointURL)
}

func TestApp_Singleton(t *testing.T) {
	first := App()
	second := App()

	require.NotNil(t, first.Validator)
	assert.Same(t, first, second)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "not-a-number")

	assert.Equal(t, "value", GetEnv("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetEnv("TEST_UNSET", "fallback"))
	assert.True(t, GetBoolEnv("TEST_BOOL", false))
	assert.False(t, GetBoolEnv("TEST_UNSET", false))
	assert.Equal(t, 42, GetIntEnv("TEST_INT", 1))
	assert.Equal(t, 7, GetIntEnv("TEST_BAD_INT", 7))
}
