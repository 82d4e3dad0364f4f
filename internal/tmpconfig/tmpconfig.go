// Package tmpconfig loads the allocator's configuration from an
// optional YAML file, falling back to the documented defaults when no
// file is given or a field is left zero.
//
// Grounded on gopkg.in/yaml.v3, a dependency shared by the pack's
// yaninyzwitty-hyperpb-go and nmxmxh-inos_v1 repos.
package tmpconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// PoolConfig overrides the initial super-block size of the size class
// whose chunk size equals ChunkSize, per §6's pool_configs option.
// Class chunk sizes themselves are fixed.
type PoolConfig struct {
	ChunkSize        uintptr `yaml:"chunk_size"`
	InitialBlockSize uintptr `yaml:"initial_block_size"`
}

// Config is the single configuration record from §6.
type Config struct {
	TotalReserveSize   uintptr      `yaml:"total_reserve_size"`
	PoolConfigs        []PoolConfig `yaml:"pool_configs"`
	FrameAllocatorSize uintptr      `yaml:"frame_allocator_size"`
}

// DefaultTotalReserveSize is the default one-shot virtual reservation
// size: 1 GiB.
const DefaultTotalReserveSize = 1 << 30

// DefaultFrameAllocatorSize is the default per-frame arena size: 16 MiB,
// matching the original source's FrameAllocatorSize default.
const DefaultFrameAllocatorSize = 16 << 20

// Default returns the zero-configuration defaults.
func Default() Config {
	return Config{
		TotalReserveSize:   DefaultTotalReserveSize,
		FrameAllocatorSize: DefaultFrameAllocatorSize,
	}
}

// Load reads a YAML config file at path and overlays it on top of the
// defaults; zero fields in the file are left at their default value.
// A missing file is not an error — Load returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, err
	}

	if fileCfg.TotalReserveSize != 0 {
		cfg.TotalReserveSize = fileCfg.TotalReserveSize
	}
	if fileCfg.FrameAllocatorSize != 0 {
		cfg.FrameAllocatorSize = fileCfg.FrameAllocatorSize
	}
	if len(fileCfg.PoolConfigs) > 0 {
		cfg.PoolConfigs = fileCfg.PoolConfigs
	}

	return cfg, nil
}
