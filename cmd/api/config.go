package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"hydroroute.org/internal/appconf"
	"hydroroute.org/internal/models"
	"hydroroute.org/internal/network"
	"hydroroute.org/internal/planner"
)

// envPrefix is the prefix of environment variables that provide flag
// defaults, e.g. HYDROROUTE_DATASET for -dataset.
const envPrefix = "HYDROROUTE_"

type options struct {
	appConfig     appconf.Config
	plannerConfig planner.Config
	logLevel      string
}

// parseOptions reads flags from args. lookupEnv supplies defaults for flags
// that are not given on the command line.
func parseOptions(args []string, lookupEnv func(string) (string, bool), output io.Writer) (options, error) {
	var (
		opts           options
		env            string
		apiKeys        string
		edgeWeights    string
		snapThreshold  float64
		costRate       float64
		reloadInterval time.Duration
		routeTimeout   time.Duration
	)

	fs := flag.NewFlagSet("hydroroute", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&opts.appConfig.Port, "port", 4000, "API server port")
	fs.StringVar(&env, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&apiKeys, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	fs.IntVar(&opts.appConfig.RateLimit, "rate-limit", 100, "Requests per second per API key (negative disables limiting)")
	fs.StringVar(&opts.plannerConfig.DatasetPath, "dataset", "testdata/pipelines.geojson", "Path or URL of the pipeline GeoJSON dataset")
	fs.Float64Var(&snapThreshold, "snap-threshold", planner.DefaultSnapThreshold, "Coordinate snap threshold in degrees")
	fs.StringVar(&edgeWeights, "edge-weights", "last", "Weight kept for repeated edges (last|min)")
	fs.StringVar(&opts.plannerConfig.NameProperty, "name-property", "", "GeoJSON property holding the pipeline name")
	fs.StringVar(&opts.plannerConfig.YearProperty, "year-property", "", "GeoJSON property holding the commissioning year")
	fs.DurationVar(&reloadInterval, "reload-interval", time.Minute, "How often to check the dataset for changes (0 disables)")
	fs.DurationVar(&routeTimeout, "route-timeout", 5*time.Second, "Time limit for a single route request")
	fs.Float64Var(&costRate, "cost-rate", models.DefaultCostRate, "Transport cost in EUR/kg per 1000 km")
	fs.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	fs.BoolVar(&opts.appConfig.Verbose, "verbose", false, "Log dataset reloads")

	if err := applyEnvDefaults(fs, lookupEnv); err != nil {
		return opts, err
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if snapThreshold < 0 {
		return opts, fmt.Errorf("-snap-threshold: %w", network.ErrInvalidThreshold)
	}
	policy, err := network.ParseEdgeWeightPolicy(edgeWeights)
	if err != nil {
		return opts, fmt.Errorf("-edge-weights: %w", err)
	}
	if reloadInterval < 0 {
		return opts, errors.New("-reload-interval must not be negative")
	}

	opts.appConfig.Env = appconf.EnvFlagToEnvironment(env)
	opts.appConfig.ApiKeys = appconf.ParseAPIKeys(apiKeys)
	opts.appConfig.RouteTimeout = routeTimeout
	opts.appConfig.CostRate = costRate

	opts.plannerConfig.SnapThreshold = snapThreshold
	opts.plannerConfig.EdgeWeights = policy
	opts.plannerConfig.ReloadInterval = reloadInterval
	opts.plannerConfig.Env = opts.appConfig.Env
	opts.plannerConfig.Verbose = opts.appConfig.Verbose

	if err := opts.appConfig.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// applyEnvDefaults sets every flag that has a matching environment
// variable; -rate-limit reads HYDROROUTE_RATE_LIMIT.
func applyEnvDefaults(fs *flag.FlagSet, lookupEnv func(string) (string, bool)) error {
	var err error
	fs.VisitAll(func(f *flag.Flag) {
		if err != nil {
			return
		}
		value, ok := lookupEnv(envName(f.Name))
		if !ok {
			return
		}
		if setErr := fs.Set(f.Name, value); setErr != nil {
			err = fmt.Errorf("%s=%s: %w", envName(f.Name), strconv.Quote(value), setErr)
		}
	})
	return err
}

func envName(flagName string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}
