package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/soapywu/pbxpkg/internal/cloner"
	"github.com/soapywu/pbxpkg/pbxproj"
)

// DefaultFile is picked up from the working directory when no --config is given.
const DefaultFile = ".pbxpkg.yaml"

// Config holds everything a clone run needs. Command line flags override it.
type Config struct {
	// Project is a project.pbxproj file or the .xcodeproj bundle holding it.
	Project string `yaml:"project"`

	Source       string `yaml:"source"`
	Target       string `yaml:"target"`
	Mode         string `yaml:"mode"` // text, tree
	NativeTarget string `yaml:"native_target"`

	IDs IDConfig `yaml:"ids"`

	Logging LoggingConfig `yaml:"logging"`
}

// IDConfig controls the identifiers of the records a clone creates.
type IDConfig struct {
	Dependency string `yaml:"dependency"`
	BuildFile  string `yaml:"build_file"`
	Generate   bool   `yaml:"generate"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the configuration that adds FirebaseMessaging next
// to FirebaseFirestore with the fixed identifiers.
func DefaultConfig() *Config {
	return &Config{
		Source: cloner.DefaultSource,
		Target: cloner.DefaultTarget,
		Mode:   string(cloner.ModeText),
		IDs: IDConfig{
			Dependency: cloner.DefaultDependencyID,
			BuildFile:  cloner.DefaultBuildFileID,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file on top of the defaults. A missing file yields the
// defaults unless it was asked for explicitly.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields a clone depends on.
func (c *Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("no project given: pass a project.pbxproj path or set project in %s", DefaultFile)
	}
	if c.Source == "" || c.Target == "" {
		return fmt.Errorf("source and target product names are required")
	}
	if c.Source == c.Target {
		return fmt.Errorf("source and target are both %s", c.Source)
	}
	switch cloner.Mode(c.Mode) {
	case cloner.ModeText, cloner.ModeTree:
	default:
		return fmt.Errorf("unknown mode %q (want %s or %s)", c.Mode, cloner.ModeText, cloner.ModeTree)
	}
	if c.NativeTarget != "" && cloner.Mode(c.Mode) != cloner.ModeTree {
		return fmt.Errorf("native_target needs mode %s", cloner.ModeTree)
	}
	if !c.IDs.Generate {
		for _, id := range []string{c.IDs.Dependency, c.IDs.BuildFile} {
			if !pbxproj.IsUUID(id) {
				return fmt.Errorf("invalid object id %q: want %d uppercase hex digits", id, pbxproj.UUIDLength)
			}
		}
	}
	return nil
}

// ProjectFile resolves Project to the project.pbxproj file.
func (c *Config) ProjectFile() string {
	return ResolveProjectFile(c.Project)
}

// ResolveProjectFile maps an .xcodeproj bundle to the project.pbxproj
// inside it and leaves any other path alone.
func ResolveProjectFile(path string) string {
	if strings.HasSuffix(strings.TrimSuffix(path, string(filepath.Separator)), ".xcodeproj") {
		return filepath.Join(path, "project.pbxproj")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, "project.pbxproj")
	}
	return path
}

// Request turns the configuration into a clone request.
func (c *Config) Request() cloner.Request {
	return cloner.Request{
		Source:       c.Source,
		Target:       c.Target,
		NativeTarget: c.NativeTarget,
		DependencyID: c.IDs.Dependency,
		BuildFileID:  c.IDs.BuildFile,
		GenerateIDs:  c.IDs.Generate,
		Filename:     c.ProjectFile(),
	}
}
