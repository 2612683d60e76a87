// Package conf loads buffer pool configuration from an INI file, in the
// teacher's Cfg/Load style (see server/conf in the original tree), trimmed
// to the settings this core actually consumes.
package conf

import (
	"os"
	"time"

	"gopkg.in/ini.v1"

	"github.com/Sherlockouo/bustub/logger"
)

// CommandLineArgs carries the subset of process arguments Load needs.
type CommandLineArgs struct {
	ConfigPath string
}

// Cfg holds the buffer pool's tunables plus the raw parsed file for callers
// that need a setting this struct doesn't expose.
type Cfg struct {
	Raw *ini.File

	PoolSize      int    `default:"64" json:"pool_size,omitempty"`
	PageSize      int    `default:"4096" json:"page_size,omitempty"`
	NumInstances  int    `default:"1" json:"num_instances,omitempty"`
	DataFile      string `default:"data/bustub.db" json:"data_file,omitempty"`
	FlushInterval string `default:"1s" json:"flush_interval,omitempty"`

	FlushIntervalDuration time.Duration

	LogLevel string `default:"info" json:"log_level,omitempty"`
	LogError string `default:"" json:"log_error,omitempty"`
	LogInfo  string `default:"" json:"log_info,omitempty"`
}

// NewCfg returns a Cfg populated with defaults, usable without ever calling
// Load.
func NewCfg() *Cfg {
	return &Cfg{
		Raw:           ini.Empty(),
		PoolSize:      64,
		PageSize:      4096,
		NumInstances:  1,
		DataFile:      "data/bustub.db",
		FlushInterval: "1s",

		FlushIntervalDuration: time.Second,
	}
}

// Load reads args.ConfigPath (an INI file's [buffer_pool] and [logs]
// sections) over the defaults. A missing config file is not an error — the
// defaults stand — but a malformed one is fatal, matching the teacher's
// load-or-exit behavior.
func (cfg *Cfg) Load(args *CommandLineArgs) *Cfg {
	iniFile, err := loadConfiguration(args)
	if err != nil {
		logger.Fatalf("conf: failed to load %s: %v", args.ConfigPath, err)
	}
	cfg.Raw = iniFile

	cfg.parseBufferPoolSection(cfg.Raw.Section("buffer_pool"))
	cfg.parseLogsSection(cfg.Raw.Section("logs"))

	d, err := time.ParseDuration(cfg.FlushInterval)
	if err != nil {
		logger.Fatalf("conf: invalid flush_interval %q: %v", cfg.FlushInterval, err)
	}
	cfg.FlushIntervalDuration = d

	return cfg
}

func loadConfiguration(args *CommandLineArgs) (*ini.File, error) {
	if args == nil || args.ConfigPath == "" {
		return ini.Empty(), nil
	}
	if _, err := os.Stat(args.ConfigPath); os.IsNotExist(err) {
		return ini.Empty(), nil
	}
	return ini.Load(args.ConfigPath)
}

func (cfg *Cfg) parseBufferPoolSection(section *ini.Section) *Cfg {
	if section == nil {
		return cfg
	}
	if k, err := section.GetKey("pool_size"); err == nil {
		if v, err := k.Int(); err == nil {
			cfg.PoolSize = v
		}
	}
	if k, err := section.GetKey("page_size"); err == nil {
		if v, err := k.Int(); err == nil {
			cfg.PageSize = v
		}
	}
	if k, err := section.GetKey("num_instances"); err == nil {
		if v, err := k.Int(); err == nil {
			cfg.NumInstances = v
		}
	}
	if k, err := section.GetKey("data_file"); err == nil {
		cfg.DataFile = k.String()
	}
	if k, err := section.GetKey("flush_interval"); err == nil {
		cfg.FlushInterval = k.String()
	}
	return cfg
}

func (cfg *Cfg) parseLogsSection(section *ini.Section) *Cfg {
	if section == nil {
		return cfg
	}
	if k, err := section.GetKey("level"); err == nil {
		cfg.LogLevel = k.String()
	}
	if k, err := section.GetKey("error_log"); err == nil {
		cfg.LogError = k.String()
	}
	if k, err := section.GetKey("info_log"); err == nil {
		cfg.LogInfo = k.String()
	}
	return cfg
}
