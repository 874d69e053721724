// SPDX-License-Identifier: Apache-2.0
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command
func NewVersionCmd(version string) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the current version of sift.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Line(version, verbose))
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include Go version and platform")
	return cmd
}

// Line formats the version output; an empty version is a dev build
func Line(version string, verbose bool) string {
	if version == "" {
		version = "dev"
	}
	line := "sift version " + version
	if verbose {
		line += fmt.Sprintf(" (%s %s/%s)", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	}
	return line
}
