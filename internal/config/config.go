// Package config handles loading and validation of the conf2wiki
// configuration file.
//
// The configuration is a flat key=value file (config.txt by default).
// Every recognized key can be overridden through the environment with
// the CONF2MD_ prefix; a missing file yields the documented defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/fs"
)

// EnvPrefix is the prefix for environment overrides of config keys.
const EnvPrefix = "CONF2MD_"

// Config is the parsed and validated configuration.
type Config struct {
	// Export settings
	ExportBase   string // directory rendered documents are written to
	TemplateDir  string
	TemplateName string
	SplunkBin    string // directory containing the splunk binary
	BtoolTimeout time.Duration
	FilterKey    string // optional record filter: only export records where
	FilterValue  string // record[FilterKey] == FilterValue

	// Upload settings
	WikiURL            string // Wiki.js GraphQL endpoint
	APIToken           string
	MarkdownDir        string // directory uploaded documents are read from
	BasePath           string // remote base path joined with the document stem
	Locale             string
	MaxParallelUploads int
	MaxRetries         int
	RetryDelay         time.Duration

	// LogFilePattern names the run log file; {execution_time} is
	// replaced with a timestamp at run start.
	LogFilePattern string
}

// Default returns the built-in defaults used when config.txt is missing.
func Default() Config {
	return Config{
		ExportBase:         "export/savedsearches",
		TemplateDir:        "templates",
		TemplateName:       "example.md.tmpl",
		SplunkBin:          "/opt/splunk/bin",
		BtoolTimeout:       5 * time.Minute,
		WikiURL:            "https://wikijs.local:3000/graphql",
		MarkdownDir:        "export/savedsearches",
		BasePath:           "/a/b/c",
		Locale:             "en",
		MaxParallelUploads: 5,
		MaxRetries:         3,
		RetryDelay:         2 * time.Second,
		LogFilePattern:     "logs/wikijs_upload_{execution_time}.log",
	}
}

// recognized lists every config key, for env override resolution.
var recognized = []string{
	"EXPORT_BASE",
	"TEMPLATE_DIR",
	"TEMPLATE_NAME",
	"SPLUNK_BIN",
	"BTOOL_TIMEOUT",
	"NOTABLE_FILTER_KEY",
	"NOTABLE_FILTER_VALUE",
	"WIKIJS_URL",
	"WIKIJS_API_TOKEN",
	"WIKIJS_MARKDOWN_DIR",
	"WIKIJS_BASE_PATH",
	"WIKIJS_LOCALE",
	"WIKIJS_MAX_PARALLEL_UPLOADS",
	"WIKIJS_MAX_RETRIES",
	"WIKIJS_RETRY_DELAY",
	"WIKIJS_LOG_FILE",
}

// tokenEnvVars are checked in order for the API token, unprefixed,
// so the token never has to live in the config file.
var tokenEnvVars = []string{"WIKIJS_API_TOKEN", "WIKIJS_TOKEN", "API_TOKEN"}

// Path returns the config file path under root.
func Path(root string) string {
	return filepath.Join(root, "config.txt")
}

// Load reads the config file under root, applies environment overrides,
// and validates. A missing file is not an error; relative directory
// values are resolved against root.
func Load(fsys fs.FS, root string) (Config, error) {
	raw := map[string]string{}

	data, err := fsys.ReadFile(Path(root))
	if err == nil {
		raw, err = godotenv.Unmarshal(string(data))
		if err != nil {
			return Config{}, errors.Wrap(errors.EInvalidConfig, "failed to parse config.txt", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.EInvalidConfig, "failed to read config.txt", err)
	}

	for _, key := range recognized {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			raw[key] = v
		}
	}

	if raw["WIKIJS_API_TOKEN"] == "" {
		for _, name := range tokenEnvVars {
			if v := os.Getenv(name); v != "" {
				raw["WIKIJS_API_TOKEN"] = v
				break
			}
		}
	}

	return fromRaw(raw, root)
}

func fromRaw(raw map[string]string, root string) (Config, error) {
	cfg := Default()

	get := func(key, fallback string) string {
		if v, ok := raw[key]; ok && v != "" {
			return v
		}
		return fallback
	}

	cfg.ExportBase = resolve(root, get("EXPORT_BASE", cfg.ExportBase))
	cfg.TemplateDir = resolve(root, get("TEMPLATE_DIR", cfg.TemplateDir))
	cfg.TemplateName = get("TEMPLATE_NAME", cfg.TemplateName)
	cfg.SplunkBin = get("SPLUNK_BIN", cfg.SplunkBin)
	cfg.FilterKey = raw["NOTABLE_FILTER_KEY"]
	cfg.FilterValue = raw["NOTABLE_FILTER_VALUE"]
	cfg.WikiURL = get("WIKIJS_URL", cfg.WikiURL)
	cfg.APIToken = raw["WIKIJS_API_TOKEN"]
	cfg.MarkdownDir = resolve(root, get("WIKIJS_MARKDOWN_DIR", cfg.MarkdownDir))
	cfg.BasePath = get("WIKIJS_BASE_PATH", cfg.BasePath)
	cfg.Locale = get("WIKIJS_LOCALE", cfg.Locale)
	cfg.LogFilePattern = get("WIKIJS_LOG_FILE", cfg.LogFilePattern)

	var err error
	if cfg.MaxParallelUploads, err = parseIntKey(raw, "WIKIJS_MAX_PARALLEL_UPLOADS", cfg.MaxParallelUploads); err != nil {
		return Config{}, err
	}
	if cfg.MaxRetries, err = parseIntKey(raw, "WIKIJS_MAX_RETRIES", cfg.MaxRetries); err != nil {
		return Config{}, err
	}
	if cfg.RetryDelay, err = parseSecondsKey(raw, "WIKIJS_RETRY_DELAY", cfg.RetryDelay); err != nil {
		return Config{}, err
	}
	if cfg.BtoolTimeout, err = parseSecondsKey(raw, "BTOOL_TIMEOUT", cfg.BtoolTimeout); err != nil {
		return Config{}, err
	}

	if cfg.MaxParallelUploads < 1 {
		return Config{}, errors.New(errors.EInvalidConfig, "WIKIJS_MAX_PARALLEL_UPLOADS must be >= 1")
	}
	if cfg.MaxRetries < 1 {
		return Config{}, errors.New(errors.EInvalidConfig, "WIKIJS_MAX_RETRIES must be >= 1")
	}

	return cfg, nil
}

// SplunkExe returns the full path to the splunk binary.
func (c Config) SplunkExe() string {
	return filepath.Join(c.SplunkBin, "splunk")
}

// TemplatePath returns the full path to the template file.
func (c Config) TemplatePath() string {
	return filepath.Join(c.TemplateDir, c.TemplateName)
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func parseIntKey(raw map[string]string, key string, fallback int) (int, error) {
	v, ok := raw[key]
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.EInvalidConfig, key+" must be an integer")
	}
	return n, nil
}

// parseSecondsKey accepts a float number of seconds (matching the
// historical config format, e.g. RETRY_DELAY=2.0).
func parseSecondsKey(raw map[string]string, key string, fallback time.Duration) (time.Duration, error) {
	v, ok := raw[key]
	if !ok || v == "" {
		return fallback, nil
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs < 0 {
		return 0, errors.New(errors.EInvalidConfig, key+" must be a non-negative number of seconds")
	}
	return time.Duration(secs * float64(time.Second)), nil
}
