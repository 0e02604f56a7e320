package appconf

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment is the operating environment selected with the -env flag.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment converts an -env flag value into an Environment.
// Unknown values fall back to Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// Config holds the settings of the HTTP layer.
type Config struct {
	Port      int      `validate:"min=1,max=65535"`
	Env       Environment
	ApiKeys   []string `validate:"dive,required"`
	RateLimit int
	// RouteTimeout bounds the segment scan of a single route request.
	RouteTimeout time.Duration `validate:"gte=0"`
	// CostRate is the transport cost in EUR/kg per 1000 km.
	CostRate float64 `validate:"gte=0"`
	Verbose  bool
}

var validate = validator.New()

// Validate checks the field constraints declared on Config.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ParseAPIKeys splits a comma separated key list and drops empty entries.
func ParseAPIKeys(s string) []string {
	var keys []string
	for _, key := range strings.Split(s, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
