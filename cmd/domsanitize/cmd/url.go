package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newURLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "url <url>...",
		Short: "Check whether URLs may be used in href or src",
		Long: `Check whether URLs may be used in href or src attributes.

javascript:, data:, vbscript: and file: are always denied. http://, https://,
mailto:, fragments and relative paths are allowed. Exits non-zero when any
URL is denied.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			denied := 0
			for _, u := range args {
				if a.sanitizer.IsValidURL(u) {
					pterm.Success.WithWriter(out).Println("allowed: " + u)
					continue
				}
				denied++
				pterm.Error.WithWriter(out).Println("denied: " + u)
			}
			if denied > 0 {
				return fmt.Errorf("%d of %d URLs denied", denied, len(args))
			}
			return nil
		},
	}
}
