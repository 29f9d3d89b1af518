package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soapywu/pbxpkg/internal/cloner"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "FirebaseFirestore", cfg.Source)
	assert.Equal(t, "FirebaseMessaging", cfg.Target)
	assert.Equal(t, "text", cfg.Mode)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbxpkg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project: ios/Glist.xcodeproj
target: FirebaseAnalytics
mode: tree
native_target: Glist
ids:
  generate: true
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ios/Glist.xcodeproj", cfg.Project)
	assert.Equal(t, "FirebaseFirestore", cfg.Source, "unset keys keep their defaults")
	assert.Equal(t, "FirebaseAnalytics", cfg.Target)
	assert.Equal(t, "tree", cfg.Mode)
	assert.Equal(t, "Glist", cfg.NativeTarget)
	assert.True(t, cfg.IDs.Generate)
	assert.Equal(t, cloner.DefaultDependencyID, cfg.IDs.Dependency)
	assert.Equal(t, "debug", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ids: [1, 2"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults with project", mutate: func(c *Config) {}},
		{name: "no project", mutate: func(c *Config) { c.Project = "" }, wantErr: "no project given"},
		{name: "no target", mutate: func(c *Config) { c.Target = "" }, wantErr: "source and target product names are required"},
		{name: "same names", mutate: func(c *Config) { c.Target = c.Source }, wantErr: "source and target are both FirebaseFirestore"},
		{name: "bad mode", mutate: func(c *Config) { c.Mode = "regex" }, wantErr: `unknown mode "regex"`},
		{name: "native target in text mode", mutate: func(c *Config) { c.NativeTarget = "Glist" }, wantErr: "native_target needs mode tree"},
		{name: "native target in tree mode", mutate: func(c *Config) { c.NativeTarget = "Glist"; c.Mode = "tree" }},
		{name: "lowercase id", mutate: func(c *Config) { c.IDs.Dependency = "deadbeef0000000000000001" }, wantErr: "invalid object id"},
		{name: "short id", mutate: func(c *Config) { c.IDs.BuildFile = "DEADBEEF" }, wantErr: "invalid object id"},
		{name: "ids ignored when generated", mutate: func(c *Config) { c.IDs.Dependency = ""; c.IDs.Generate = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Project = "project.pbxproj"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestResolveProjectFile(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, filepath.Join("ios", "App.xcodeproj", "project.pbxproj"), ResolveProjectFile(filepath.Join("ios", "App.xcodeproj")))
	assert.Equal(t, filepath.Join("App.xcodeproj", "project.pbxproj"), ResolveProjectFile("App.xcodeproj"+string(filepath.Separator)))
	assert.Equal(t, filepath.Join(dir, "project.pbxproj"), ResolveProjectFile(dir))
	assert.Equal(t, "custom.pbxproj", ResolveProjectFile("custom.pbxproj"))
}

func TestRequest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Project = "Glist.xcodeproj"
	cfg.Mode = "tree"
	cfg.NativeTarget = "Glist"

	assert.Equal(t, cloner.Request{
		Source:       "FirebaseFirestore",
		Target:       "FirebaseMessaging",
		NativeTarget: "Glist",
		DependencyID: cloner.DefaultDependencyID,
		BuildFileID:  cloner.DefaultBuildFileID,
		Filename:     filepath.Join("Glist.xcodeproj", "project.pbxproj"),
	}, cfg.Request())
}
