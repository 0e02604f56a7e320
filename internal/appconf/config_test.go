package appconf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvFlagToEnvironment(t *testing.T) {
	tests := []struct {
		flag string
		want Environment
	}{
		{flag: "development", want: Development},
		{flag: "test", want: Test},
		{flag: "Production", want: Production},
		{flag: "prod", want: Production},
		{flag: "staging", want: Development},
		{flag: "", want: Development},
	}

	for _, tt := range tests {
		t.Run("maps "+tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvFlagToEnvironment(tt.flag))
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	assert.Equal(t, "development", Development.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "production", Production.String())
}

func TestParseAPIKeys(t *testing.T) {
	assert.Equal(t, []string{"test", "demo"}, ParseAPIKeys(" test, demo ,,"))
	assert.Nil(t, ParseAPIKeys(""))
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Port: 4000, ApiKeys: []string{"test"}, RouteTimeout: time.Second, CostRate: 0.21}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "zero port", mutate: func(c *Config) { c.Port = 0 }},
		{name: "port too large", mutate: func(c *Config) { c.Port = 65536 }},
		{name: "blank API key", mutate: func(c *Config) { c.ApiKeys = []string{"test", ""} }},
		{name: "negative route timeout", mutate: func(c *Config) { c.RouteTimeout = -time.Second }},
		{name: "negative cost rate", mutate: func(c *Config) { c.CostRate = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	t.Run("no API keys is allowed", func(t *testing.T) {
		c := valid
		c.ApiKeys = nil
		assert.NoError(t, c.Validate())
	})
}
