package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	Env = map[string]string{"FOO": "bar"}
	defer func() { Env = nil }()

	assert.Equal(t, "bar", GetEnv("FOO", "fallback"))
	assert.Equal(t, "fallback", GetEnv("MISSING", "fallback"))

	// OS environment is the fallback before the default
	t.Setenv("FROM_OS", "os-value")
	assert.Equal(t, "os-value", GetEnv("FROM_OS", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	Env = map[string]string{
		"PORT":    "8080",
		"NOT_INT": "eighty",
	}
	defer func() { Env = nil }()

	assert.Equal(t, 8080, GetEnvInt("PORT", 4000))
	assert.Equal(t, 4000, GetEnvInt("MISSING", 4000))
	assert.Equal(t, 4000, GetEnvInt("NOT_INT", 4000))
}
