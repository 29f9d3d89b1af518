package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/soapywu/pbxpkg/pbxproj"
)

var listCmd = &cobra.Command{
	Use:   "list [project]",
	Short: "List Swift packages, their products and the targets using them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := loadProject(args)
		if err != nil {
			return err
		}
		printPackages(cmd.OutOrStdout(), project)
		return nil
	},
}

func printPackages(out io.Writer, project *pbxproj.PbxProject) {
	fmt.Fprintln(out, "Packages:")
	for _, ref := range project.PackageReferences() {
		fmt.Fprintf(out, "  %s  %s\n", ref.Value, ref.Comment)
	}

	fmt.Fprintln(out, "Products:")
	for _, product := range project.PackageProducts() {
		fmt.Fprintf(out, "  %s  %s\n", product.UUID, product.Name)
	}

	fmt.Fprintln(out, "Targets:")
	for _, target := range project.NativeTargets() {
		fmt.Fprintf(out, "  %s  %s\n", target.UUID, target.GetString("name"))
		for _, dep := range project.TargetPackageProducts(target) {
			fmt.Fprintf(out, "    - %s  %s\n", dep.Value, dep.Comment)
		}
	}
}
