package config

import "time"

// File represents the structure of the lessen.yaml configuration file.
type File struct {
	SourceRoot       string      `yaml:"source_root"`
	OutputRoot       string      `yaml:"output_root"`
	ThemesDir        string      `yaml:"themes_dir"`
	DynamicExtension string      `yaml:"dynamic_extension"`
	Dev              bool        `yaml:"dev"`
	CacheControl     *int        `yaml:"cache_control"`
	Cache            CacheDTO    `yaml:"cache"`
	Compiler         CompilerDTO `yaml:"compiler"`
}

// CacheDTO configures the compilation cache storage.
type CacheDTO struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
	MaxKeys int           `yaml:"max_keys"`
}

// CompilerDTO configures the external stylesheet compiler.
type CompilerDTO struct {
	Command []string `yaml:"command"`
}
