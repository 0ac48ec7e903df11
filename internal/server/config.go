package server

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/reelops/reelsweep/internal/utils"
)

const (
	DefaultAddr      = ":1968"
	DefaultDBPath    = "./reelsweep.db"
	DefaultRateLimit = "60-M"
)

// Config is the full server configuration. Directory roots come from the
// environment (or an .env file); the core engine itself never reads them,
// they are passed into every operation explicitly.
type Config struct {
	HTTP  HTTPConfig
	Roots RootsConfig

	// DBPath is the sqlite file backing the operation journal.
	DBPath string

	// RateLimit caps mutating endpoints, in ulule/limiter format ("60-M").
	RateLimit string

	// UnwantedPatterns are doublestar globs for the unwanted-file sweep.
	// Empty means the built-in defaults.
	UnwantedPatterns []string
}

type HTTPConfig struct {
	Addr     string
	CertFile string
	KeyFile  string
}

// RootsConfig holds the five directory roots the operations work across.
type RootsConfig struct {
	// Cleanup is the inbound directory: downloads land here and get compared
	// against Target, swept for unwanted files and pruned of empty folders.
	Cleanup string

	// Target is the curated library the Cleanup directory reconciles into.
	Target string

	// Recycled holds discarded movie folders whose subtitles may be salvaged.
	Recycled string

	// Salvaged receives salvaged subtitle folders and feeds the subtitle sync.
	Salvaged string

	// Migrated receives non-movie folders moved out of Target.
	Migrated string
}

// LoadConfig reads configuration from the environment via viper. Defaults
// match the container layout the service historically shipped with.
func LoadConfig() (*Config, error) {
	v := viper.GetViper()

	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("rate_limit", DefaultRateLimit)
	v.SetDefault("cleanup_directory", "/data")
	v.SetDefault("target_directory", "/target")
	v.SetDefault("recycled_movies_directory", "/recycled/movies")
	v.SetDefault("salvaged_movies_directory", "/salvaged/movies")
	v.SetDefault("migrated_movies_directory", "/migrated/movies")

	for key, env := range map[string]string{
		"addr":                      "ADDR",
		"db_path":                   "DB_PATH",
		"rate_limit":                "RATE_LIMIT",
		"cleanup_directory":         "CLEANUP_DIRECTORY",
		"target_directory":          "TARGET_DIRECTORY",
		"recycled_movies_directory": "RECYCLED_MOVIES_DIRECTORY",
		"salvaged_movies_directory": "SALVAGED_MOVIES_DIRECTORY",
		"migrated_movies_directory": "MIGRATED_MOVIES_DIRECTORY",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Addr:     v.GetString("addr"),
			CertFile: v.GetString("cert_file"),
			KeyFile:  v.GetString("key_file"),
		},
		Roots: RootsConfig{
			Cleanup:  v.GetString("cleanup_directory"),
			Target:   v.GetString("target_directory"),
			Recycled: v.GetString("recycled_movies_directory"),
			Salvaged: v.GetString("salvaged_movies_directory"),
			Migrated: v.GetString("migrated_movies_directory"),
		},
		DBPath:           v.GetString("db_path"),
		RateLimit:        v.GetString("rate_limit"),
		UnwantedPatterns: v.GetStringSlice("unwanted_patterns"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// criticalPaths are roots an operation must never be pointed at directly.
// Subdirectories of these are fine; the paths themselves are not.
var criticalPaths = []string{
	"/",
	"/bin",
	"/boot",
	"/dev",
	"/etc",
	"/home",
	"/lib",
	"/proc",
	"/root",
	"/sbin",
	"/sys",
	"/usr",
	"/var",
}

// Validate resolves every root to an absolute path and rejects critical
// system directories. Roots are not required to exist yet; a missing root
// fails the individual operation, not server startup.
func (c *Config) Validate() error {
	roots := map[string]*string{
		"cleanup_directory":         &c.Roots.Cleanup,
		"target_directory":          &c.Roots.Target,
		"recycled_movies_directory": &c.Roots.Recycled,
		"salvaged_movies_directory": &c.Roots.Salvaged,
		"migrated_movies_directory": &c.Roots.Migrated,
	}
	for name, root := range roots {
		resolved, err := utils.ResolvePath(*root)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		for _, p := range criticalPaths {
			if resolved == p {
				return fmt.Errorf("%s: refusing to operate on system path %q", name, resolved)
			}
		}
		*root = resolved
	}

	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultAddr
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath
	}
	if c.RateLimit == "" {
		c.RateLimit = DefaultRateLimit
	}
	return nil
}
