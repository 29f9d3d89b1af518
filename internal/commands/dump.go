package commands

import (
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [project]",
	Short: "Print the parsed project as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := loadProject(args)
		if err != nil {
			return err
		}
		return project.Dump(cmd.OutOrStdout())
	},
}
