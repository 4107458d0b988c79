package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd — сведения о сборке recipectl.
// Без -ldflags версия и дата не заданы, тогда печатается "dev" и "unknown".
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Версия recipectl",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if buildVersion == "" {
				buildVersion = "dev"
			}
			if buildDate == "" {
				buildDate = "unknown"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recipectl %s (built %s, %s %s/%s)\n",
				buildVersion, buildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
