// Package config resolves namestory settings from defaults, a YAML file,
// the environment and command-line flags, remembering where each came from.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a resolved value fails validation.
var ErrInvalid = errors.New("invalid configuration")

type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

type ResolvedValue struct {
	Value  string      `json:"value" yaml:"value"`
	Source ValueSource `json:"source" yaml:"source"`
	From   string      `json:"from,omitempty" yaml:"from,omitempty"`
}

// Environment variables read by ResolveConfig.
const (
	EnvConfig  = "NAMESTORY_CONFIG"
	EnvDataDir = "NAMESTORY_DATA_DIR"
	EnvDogs    = "NAMESTORY_DOGS"
	EnvBabies  = "NAMESTORY_BABIES"
	EnvMinYear = "NAMESTORY_MIN_YEAR"
	EnvFormat  = "NAMESTORY_FORMAT"
)

// Formats lists the output formats the CLI can write.
var Formats = []string{"json", "pretty", "yaml", "csv", "text"}

// ResolveOptions carries flag values; empty means the flag was not given.
type ResolveOptions struct {
	ConfigPath string
	CLIDataDir string
	CLIDogs    string
	CLIBabies  string
	CLIMinYear string
	CLIFormat  string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path" yaml:"config_path"`

	DataDir      ResolvedValue `json:"data_dir" yaml:"data_dir"`
	DogFile      ResolvedValue `json:"dog_file" yaml:"dog_file"`
	BabyFile     ResolvedValue `json:"baby_file" yaml:"baby_file"`
	MinYear      ResolvedValue `json:"min_year" yaml:"min_year"`
	MaxCount     ResolvedValue `json:"max_count" yaml:"max_count"`
	DefaultYear  ResolvedValue `json:"default_year" yaml:"default_year"`
	DefaultCount ResolvedValue `json:"default_count" yaml:"default_count"`
	Format       ResolvedValue `json:"format" yaml:"format"`
}

type fileConfig struct {
	DataDir      string `yaml:"data_dir"`
	DogFile      string `yaml:"dog_file"`
	BabyFile     string `yaml:"baby_file"`
	MinYear      int    `yaml:"min_year"`
	MaxCount     int    `yaml:"max_count"`
	DefaultYear  int    `yaml:"default_year"`
	DefaultCount int    `yaml:"default_count"`
	Format       string `yaml:"format"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".namestory", "config.yaml")
}

// ResolveConfig layers defaults, the config file, the environment and flags,
// later layers winning. A missing config file is only an error when its
// path was given explicitly.
func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	explicit := path != ""
	if !explicit {
		if v := strings.TrimSpace(os.Getenv(EnvConfig)); v != "" {
			path, explicit = v, true
		}
	}
	if path == "" {
		path = DefaultConfigPath()
	}
	path = expandUserPath(path)

	out := defaults()
	out.ConfigPath = path

	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return out, err
	}

	if cfg != nil {
		apply(&out.DataDir, cfg.DataDir, SourceConfig, path)
		apply(&out.DogFile, cfg.DogFile, SourceConfig, path)
		apply(&out.BabyFile, cfg.BabyFile, SourceConfig, path)
		applyInt(&out.MinYear, cfg.MinYear, path)
		applyInt(&out.MaxCount, cfg.MaxCount, path)
		applyInt(&out.DefaultYear, cfg.DefaultYear, path)
		applyInt(&out.DefaultCount, cfg.DefaultCount, path)
		apply(&out.Format, cfg.Format, SourceConfig, path)
	}

	applyEnv(&out.DataDir, EnvDataDir)
	applyEnv(&out.DogFile, EnvDogs)
	applyEnv(&out.BabyFile, EnvBabies)
	applyEnv(&out.MinYear, EnvMinYear)
	applyEnv(&out.Format, EnvFormat)

	apply(&out.DataDir, opts.CLIDataDir, SourceCLI, "--data-dir")
	apply(&out.DogFile, opts.CLIDogs, SourceCLI, "--dogs")
	apply(&out.BabyFile, opts.CLIBabies, SourceCLI, "--babies")
	apply(&out.MinYear, opts.CLIMinYear, SourceCLI, "--min-year")
	apply(&out.Format, opts.CLIFormat, SourceCLI, "--format")

	out.DataDir.Value = expandUserPath(out.DataDir.Value)

	if _, err := out.Settings(); err != nil {
		return out, err
	}
	return out, nil
}

func defaults() ResolvedConfig {
	def := func(v string) ResolvedValue {
		return ResolvedValue{Value: v, Source: SourceDefault, From: "built-in default"}
	}
	return ResolvedConfig{
		DataDir:      def("."),
		DogFile:      def("dogdata.csv"),
		BabyFile:     def("humandata.csv"),
		MinYear:      def("2010"),
		MaxCount:     def("100"),
		DefaultYear:  def("2010"),
		DefaultCount: def("10"),
		Format:       def("json"),
	}
}

// ============================================================================
// TYPED SETTINGS
// ============================================================================

// Settings is the validated, typed form of a ResolvedConfig.
type Settings struct {
	DogPath      string
	BabyPath     string
	MinYear      int
	MaxCount     int
	DefaultYear  int
	DefaultCount int
	Format       string
}

// Settings converts and validates the resolved values. Relative file paths
// are joined to the data directory.
func (r ResolvedConfig) Settings() (Settings, error) {
	s := Settings{
		DogPath:  dataPath(r.DataDir.Value, r.DogFile.Value),
		BabyPath: dataPath(r.DataDir.Value, r.BabyFile.Value),
		Format:   strings.ToLower(r.Format.Value),
	}

	ints := []struct {
		name  string
		val   ResolvedValue
		dst   *int
		floor int
	}{
		{"min_year", r.MinYear, &s.MinYear, 0},
		{"max_count", r.MaxCount, &s.MaxCount, 1},
		{"default_year", r.DefaultYear, &s.DefaultYear, 0},
		{"default_count", r.DefaultCount, &s.DefaultCount, 1},
	}
	for _, f := range ints {
		n, err := strconv.Atoi(strings.TrimSpace(f.val.Value))
		if err != nil || n < f.floor {
			return s, fmt.Errorf("%w: %s %q from %s", ErrInvalid, f.name, f.val.Value, describe(f.val))
		}
		*f.dst = n
	}

	if !slices.Contains(Formats, s.Format) {
		return s, fmt.Errorf("%w: format %q from %s (want one of %s)", ErrInvalid, r.Format.Value, describe(r.Format), strings.Join(Formats, ", "))
	}
	return s, nil
}

// Entry is one named resolved value.
type Entry struct {
	Key string
	ResolvedValue
}

// Entries lists the resolved values in a stable order for display.
func (r ResolvedConfig) Entries() []Entry {
	return []Entry{
		{"data_dir", r.DataDir},
		{"dog_file", r.DogFile},
		{"baby_file", r.BabyFile},
		{"min_year", r.MinYear},
		{"max_count", r.MaxCount},
		{"default_year", r.DefaultYear},
		{"default_count", r.DefaultCount},
		{"format", r.Format},
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyInt(dst *ResolvedValue, n int, path string) {
	if n != 0 {
		*dst = ResolvedValue{Value: strconv.Itoa(n), Source: SourceConfig, From: path}
	}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadConfig(path string, explicit bool) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalid, path, err)
	}
	return &cfg, nil
}

func dataPath(dir, file string) string {
	file = expandUserPath(file)
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

func describe(v ResolvedValue) string {
	if v.From == "" {
		return string(v.Source)
	}
	return fmt.Sprintf("%s (%s)", v.Source, v.From)
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
