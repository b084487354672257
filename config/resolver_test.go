package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestResolveConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfig, "")

	resolved, err := ResolveConfig(ResolveOptions{})
	if err != nil {
		t.Fatalf("ResolveConfig: %v", err)
	}
	s, err := resolved.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}

	if s.DogPath != "dogdata.csv" || s.BabyPath != "humandata.csv" {
		t.Fatalf("unexpected default paths %q %q", s.DogPath, s.BabyPath)
	}
	if s.MinYear != 2010 || s.MaxCount != 100 || s.DefaultYear != 2010 || s.DefaultCount != 10 || s.Format != "json" {
		t.Fatalf("unexpected defaults %+v", s)
	}
	if resolved.MinYear.Source != SourceDefault {
		t.Fatalf("expected min_year source default, got %s", resolved.MinYear.Source)
	}
}

func TestResolveConfig_Precedence_ConfigEnvCLI(t *testing.T) {
	cfgPath := writeConfig(t, `data_dir: /data/from-config
dog_file: dogs-config.csv
baby_file: babies-config.csv
min_year: 2012
max_count: 50
format: yaml
`)

	t.Setenv(EnvDogs, "dogs-env.csv")
	t.Setenv(EnvMinYear, "2011")

	resolved, err := ResolveConfig(ResolveOptions{
		ConfigPath: cfgPath,
		CLIDogs:    "/abs/dogs-cli.csv",
		CLIFormat:  "csv",
	})
	if err != nil {
		t.Fatalf("ResolveConfig: %v", err)
	}

	if resolved.DogFile.Source != SourceCLI {
		t.Fatalf("expected dog file source cli, got %s", resolved.DogFile.Source)
	}
	if resolved.MinYear.Source != SourceEnv || resolved.MinYear.From != EnvMinYear {
		t.Fatalf("expected min_year from env, got %+v", resolved.MinYear)
	}
	if resolved.BabyFile.Source != SourceConfig || resolved.BabyFile.From != cfgPath {
		t.Fatalf("expected baby file from config, got %+v", resolved.BabyFile)
	}
	if resolved.DefaultCount.Source != SourceDefault {
		t.Fatalf("expected default_count from default, got %s", resolved.DefaultCount.Source)
	}

	s, err := resolved.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if s.DogPath != "/abs/dogs-cli.csv" {
		t.Fatalf("absolute dog path should not be joined: %q", s.DogPath)
	}
	if s.BabyPath != filepath.Join("/data/from-config", "babies-config.csv") {
		t.Fatalf("relative baby path should be joined to data_dir: %q", s.BabyPath)
	}
	if s.MinYear != 2011 || s.MaxCount != 50 || s.Format != "csv" {
		t.Fatalf("unexpected settings %+v", s)
	}
}

func TestResolveConfig_EnvConfigPath(t *testing.T) {
	cfgPath := writeConfig(t, "default_year: 2015\n")
	t.Setenv(EnvConfig, cfgPath)

	resolved, err := ResolveConfig(ResolveOptions{})
	if err != nil {
		t.Fatalf("ResolveConfig: %v", err)
	}
	if resolved.ConfigPath != cfgPath || resolved.DefaultYear.Value != "2015" {
		t.Fatalf("config path from env not used: %+v", resolved)
	}
}

func TestResolveConfig_MissingExplicitFile(t *testing.T) {
	_, err := ResolveConfig(ResolveOptions{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error for an explicit config path, got %v", err)
	}
}

func TestResolveConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts ResolveOptions
		body string
	}{
		{name: "bad format flag", opts: ResolveOptions{CLIFormat: "xml"}},
		{name: "non numeric min year", opts: ResolveOptions{CLIMinYear: "soon"}},
		{name: "negative max count", body: "max_count: -5\n"},
		{name: "broken yaml", body: "data_dir: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfig, "")
			opts := tt.opts
			if tt.body != "" {
				opts.ConfigPath = writeConfig(t, tt.body)
			} else {
				opts.ConfigPath = filepath.Join(t.TempDir(), "absent.yaml")
				if err := os.WriteFile(opts.ConfigPath, nil, 0o600); err != nil {
					t.Fatal(err)
				}
			}

			if _, err := ResolveConfig(opts); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestEntriesOrder(t *testing.T) {
	entries := defaults().Entries()
	if len(entries) != 8 || entries[0].Key != "data_dir" || entries[7].Key != "format" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
