package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soapywu/pbxpkg/pbxproj"
)

var newIDCount int

var newIDCmd = &cobra.Command{
	Use:   "newid [project]",
	Short: "Print object ids that are free in the project",
	Long: `Prints random 24 digit uppercase hex ids. With a project, ids already
used by its objects are never returned. Useful as --dependency-id and
--build-file-id values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		generate := pbxproj.NewUUIDSet().Generate
		if len(args) > 0 {
			project, err := loadProject(args)
			if err != nil {
				return err
			}
			generate = project.GenerateUuid
		}
		for i := 0; i < newIDCount; i++ {
			fmt.Fprintln(cmd.OutOrStdout(), generate())
		}
		return nil
	},
}

func init() {
	newIDCmd.Flags().IntVarP(&newIDCount, "count", "n", 2, "How many ids to print")
}
