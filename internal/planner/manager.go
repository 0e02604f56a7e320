package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hydroroute.org/internal/appconf"
	"hydroroute.org/internal/dataset"
	"hydroroute.org/internal/logging"
	"hydroroute.org/internal/metrics"
	"hydroroute.org/internal/network"
)

const DefaultSnapThreshold = 0.11

type Config struct {
	DatasetPath    string
	SnapThreshold  float64
	EdgeWeights    network.EdgeWeightPolicy
	NameProperty   string
	YearProperty   string
	ReloadInterval time.Duration
	Env            appconf.Environment
	Verbose        bool
}

// Manager owns the routing network built from a pipeline dataset. The
// network itself is immutable; Manager only swaps it when the dataset or
// the snap threshold changes.
type Manager struct {
	config       Config
	logger       *slog.Logger
	mu           sync.RWMutex
	rebuildMu    sync.Mutex // serializes threshold read, build and swap
	dataset      *dataset.Dataset
	network      *network.Network
	threshold    float64
	lastBuilt    time.Time
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitNetworkManager loads the dataset, builds the first network and
// starts the reload loop when config.ReloadInterval is positive.
func InitNetworkManager(ctx context.Context, config Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	manager := &Manager{
		config:       config,
		logger:       logger.With(slog.String("component", "network_manager")),
		threshold:    config.SnapThreshold,
		shutdownChan: make(chan struct{}),
	}

	ds, err := manager.loadDataset(ctx)
	if err != nil {
		return nil, err
	}
	n, err := manager.buildNetwork(ds, config.SnapThreshold)
	if err != nil {
		return nil, err
	}
	manager.setNetwork(ds, n, config.SnapThreshold)

	if config.ReloadInterval > 0 {
		manager.wg.Add(1)
		go manager.reloadPeriodically()
	}

	return manager, nil
}

func (manager *Manager) loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	opts := dataset.Options{
		NameProperty: manager.config.NameProperty,
		YearProperty: manager.config.YearProperty,
	}
	ds, err := dataset.Load(ctx, manager.config.DatasetPath, opts, manager.logger)
	if err != nil {
		return nil, fmt.Errorf("error loading pipeline dataset: %w", err)
	}
	return ds, nil
}

func (manager *Manager) buildNetwork(ds *dataset.Dataset, threshold float64) (*network.Network, error) {
	start := time.Now()
	n, err := network.BuildNetwork(ds.Segments, threshold, network.WithEdgeWeightPolicy(manager.config.EdgeWeights))
	metrics.NetworkBuildDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		metrics.NetworkBuildsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("error building network from %s: %w", ds.Source, err)
	}
	metrics.NetworkBuildsTotal.WithLabelValues("ok").Inc()

	stats := n.Stats()
	logging.LogTimedOperation(manager.logger, "network_built", start,
		slog.String("source", ds.Source),
		slog.Float64("snap_threshold", threshold),
		slog.Int("segments", stats.Segments),
		slog.Int("nodes", n.Graph().NodeCount()),
		slog.Int("edges", n.Graph().EdgeCount()),
		slog.Int("components", stats.Components),
		slog.Int("discarded_nodes", stats.DiscardedNodes))
	if stats.ConflictingWeights > 0 {
		manager.logger.Warn("repeated edges carried different weights",
			slog.Int("conflicting_weights", stats.ConflictingWeights),
			slog.String("edge_weights", manager.config.EdgeWeights.String()))
	}
	return n, nil
}

func (manager *Manager) setNetwork(ds *dataset.Dataset, n *network.Network, threshold float64) {
	manager.mu.Lock()
	manager.dataset = ds
	manager.network = n
	manager.threshold = threshold
	manager.lastBuilt = time.Now()
	manager.mu.Unlock()

	metrics.NetworkNodes.Set(float64(n.Graph().NodeCount()))
	metrics.NetworkEdges.Set(float64(n.Graph().EdgeCount()))
	metrics.NetworkDiscardedNodes.Set(float64(n.Stats().DiscardedNodes))
}

// Network returns the network currently used for routing.
func (manager *Manager) Network() *network.Network {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.network
}

// Snapshot is a consistent view of the manager state.
type Snapshot struct {
	Network     *network.Network
	Dataset     *dataset.Dataset
	EdgeWeights network.EdgeWeightPolicy
	BuiltAt     time.Time
}

func (manager *Manager) Snapshot() Snapshot {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return Snapshot{
		Network:     manager.network,
		Dataset:     manager.dataset,
		EdgeWeights: manager.config.EdgeWeights,
		BuiltAt:     manager.lastBuilt,
	}
}

// SetSnapThreshold rebuilds the network from the loaded dataset with a new
// threshold. The current network stays in place when the rebuild fails.
func (manager *Manager) SetSnapThreshold(threshold float64) error {
	manager.rebuildMu.Lock()
	defer manager.rebuildMu.Unlock()

	manager.mu.RLock()
	ds := manager.dataset
	manager.mu.RUnlock()

	n, err := manager.buildNetwork(ds, threshold)
	if err != nil {
		return err
	}
	manager.setNetwork(ds, n, threshold)
	return nil
}

// Reload reads the dataset again and rebuilds the network with the current
// threshold.
func (manager *Manager) Reload(ctx context.Context) error {
	ds, err := manager.loadDataset(ctx)
	if err != nil {
		return err
	}

	manager.rebuildMu.Lock()
	defer manager.rebuildMu.Unlock()

	manager.mu.RLock()
	threshold := manager.threshold
	manager.mu.RUnlock()

	n, err := manager.buildNetwork(ds, threshold)
	if err != nil {
		return err
	}
	manager.setNetwork(ds, n, threshold)
	return nil
}

// datasetChanged reports whether the dataset should be reloaded. Remote
// sources have no modification time and are always reloaded.
func (manager *Manager) datasetChanged() (bool, error) {
	if dataset.IsRemote(manager.config.DatasetPath) {
		return true, nil
	}
	modTime, err := dataset.ModTime(manager.config.DatasetPath)
	if err != nil {
		return false, err
	}

	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return !modTime.Equal(manager.dataset.ModTime), nil
}

// reloadPeriodically rebuilds the network whenever the dataset changes.
func (manager *Manager) reloadPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.ReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			changed, err := manager.datasetChanged()
			if err != nil {
				logging.LogError(manager.logger, "error checking pipeline dataset", err)
				continue
			}
			if !changed {
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			err = manager.Reload(ctx)
			cancel()
			if err != nil {
				// Keep serving the previous network.
				logging.LogError(manager.logger, "error reloading pipeline dataset", err)
				continue
			}
			if manager.config.Verbose {
				manager.logger.Info("pipeline dataset reloaded", slog.String("source", manager.config.DatasetPath))
			}
		case <-manager.shutdownChan:
			manager.logger.Info("shutting down dataset reloads")
			return
		}
	}
}

// Shutdown stops the reload loop and waits for it to exit.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
	})
}
