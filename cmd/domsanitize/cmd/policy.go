package cmd

import (
	"slices"
	"strings"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/njchilds90/domsanitizer"
)

var levels = []domsanitizer.SecurityLevel{
	domsanitizer.LevelNone,
	domsanitizer.LevelMinimal,
	domsanitizer.LevelStandard,
}

func newPolicyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Show the allowed tags, attributes and dangerous patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			p := a.sanitizer.Policy()

			tags := pterm.TableData{{"Level", "Tags"}}
			tags = append(tags, lo.Map(levels, func(l domsanitizer.SecurityLevel, _ int) []string {
				return []string{l.String(), orDash(strings.Join(p.Tags(l), ", "))}
			})...)
			if err := pterm.DefaultTable.WithHasHeader().WithData(tags).WithWriter(out).Render(); err != nil {
				return err
			}

			attrTags := lo.Keys(p.AllowedAttributes)
			slices.Sort(attrTags)
			attrs := pterm.TableData{{"Tag", "Attributes"}}
			for _, tag := range attrTags {
				attrs = append(attrs, []string{tag, strings.Join(p.Attributes(tag), ", ")})
			}
			if err := pterm.DefaultTable.WithHasHeader().WithData(attrs).WithWriter(out).Render(); err != nil {
				return err
			}

			patterns := pterm.TableData{{"Pattern", "Expression"}}
			for _, dp := range p.DangerousPatterns {
				patterns = append(patterns, []string{dp.Name, dp.Expr.String()})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(patterns).WithWriter(out).Render()
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
