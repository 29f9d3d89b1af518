package commands

import (
	"fmt"

	"github.com/soapywu/pbxpkg/internal/config"
	"github.com/soapywu/pbxpkg/pbxproj"
)

// loadConfig reads the config file and applies the positional project
// argument, if any.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Project = args[0]
	}
	return cfg, nil
}

// loadProject parses the project named by args or the config file.
func loadProject(args []string) (*pbxproj.PbxProject, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return nil, err
	}
	if cfg.Project == "" {
		return nil, fmt.Errorf("no project given: pass a project.pbxproj path or set project in %s", config.DefaultFile)
	}

	project := pbxproj.NewPbxProject(cfg.ProjectFile())
	if err := project.Parse(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", project.FilePath(), err)
	}
	return &project, nil
}
