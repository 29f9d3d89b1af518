package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soapywu/pbxpkg/internal/cloner"
	"github.com/soapywu/pbxpkg/internal/config"
)

var (
	cloneFrom         string
	cloneTo           string
	cloneMode         string
	cloneNativeTarget string
	cloneDependencyID string
	cloneBuildFileID  string
	cloneGenerateIDs  bool
	cloneDryRun       bool
)

var cloneCmd = &cobra.Command{
	Use:   "clone [project]",
	Short: "Add a package product by cloning an existing one",
	Long: `Copies the XCSwiftPackageProductDependency of --from under the name --to,
adds a PBXBuildFile for it next to the one of --from, links that build file
in the Frameworks build phase and lists the product in the native target's
packageProductDependencies.

The project argument is a project.pbxproj file or its .xcodeproj bundle.
The file is rewritten only when every step succeeded.

Modes:
  text  edit the raw text; first Frameworks phase and first native target
        win, and a second run adds the product again
  tree  parse the project and edit the object graph; --target picks the
        native target, and an existing product is reported as an error`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClone,
}

func init() {
	cloneCmd.Flags().StringVar(&cloneFrom, "from", "", "Existing product to copy (default "+cloner.DefaultSource+")")
	cloneCmd.Flags().StringVar(&cloneTo, "to", "", "Product to add (default "+cloner.DefaultTarget+")")
	cloneCmd.Flags().StringVar(&cloneMode, "mode", "", "Editing strategy: text or tree (default text)")
	cloneCmd.Flags().StringVar(&cloneNativeTarget, "target", "", "Native target receiving the product (tree mode)")
	cloneCmd.Flags().StringVar(&cloneDependencyID, "dependency-id", "", "Id of the new package product (default "+cloner.DefaultDependencyID+")")
	cloneCmd.Flags().StringVar(&cloneBuildFileID, "build-file-id", "", "Id of the new build file (default "+cloner.DefaultBuildFileID+")")
	cloneCmd.Flags().BoolVar(&cloneGenerateIDs, "generate-ids", false, "Generate random ids that are not used in the project")
	cloneCmd.Flags().BoolVar(&cloneDryRun, "dry-run", false, "Print the result instead of writing the project")
}

func runClone(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	applyCloneFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	c, err := cloner.New(cloner.Mode(cfg.Mode), logger)
	if err != nil {
		return err
	}

	path := cfg.ProjectFile()
	logger.Info("Cloning package product",
		zap.String("project", path),
		zap.String("source", cfg.Source),
		zap.String("target", cfg.Target),
		zap.String("mode", cfg.Mode))

	res, err := cloner.CloneFile(path, c, cfg.Request(), cloneDryRun, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	logger.Debug("Clone finished",
		zap.String("sourceDependency", res.SourceDependencyID),
		zap.String("sourceBuildFile", res.SourceBuildFileID),
		zap.String("dependency", res.DependencyID),
		zap.String("buildFile", res.BuildFileID))

	if !cloneDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully added %s to %s\n", cfg.Target, path)
	}
	return nil
}

// applyCloneFlags lets flags that were set win over the config file.
func applyCloneFlags(cfg *config.Config) {
	if cloneFrom != "" {
		cfg.Source = cloneFrom
	}
	if cloneTo != "" {
		cfg.Target = cloneTo
	}
	if cloneMode != "" {
		cfg.Mode = cloneMode
	}
	if cloneNativeTarget != "" {
		cfg.NativeTarget = cloneNativeTarget
	}
	if cloneDependencyID != "" {
		cfg.IDs.Dependency = cloneDependencyID
	}
	if cloneBuildFileID != "" {
		cfg.IDs.BuildFile = cloneBuildFileID
	}
	if cloneGenerateIDs {
		cfg.IDs.Generate = true
	}
}
