package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/domsanitizer"
)

func newHTMLCmd(a *app) *cobra.Command {
	var levelName string
	c := &cobra.Command{
		Use:   "html [file]",
		Short: "Filter HTML down to the tags allowed at a security level",
		Long: `Filter HTML down to the tags and attributes allowed at a security level.

Levels:
  none      escape everything, no markup survives
  minimal   b, i, em, strong, code, br
  standard  minimal plus p, div, span, a, ul, ol, li`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := a.cfg.Sanitizer.Level()
			if levelName != "" {
				var err error
				if level, err = domsanitizer.ParseLevel(levelName); err != nil {
					return err
				}
			}
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.sanitizer.SanitizeHTML(string(data), level))
			return err
		},
	}
	c.Flags().StringVarP(&levelName, "level", "l", "", "security level: none, minimal, standard (default from config)")
	return c
}

func newTextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "text [file]",
		Short: "Strip control characters, cap length and escape plain text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.sanitizer.SanitizeText(string(data)))
			return err
		},
	}
}

func newJSONCmd(a *app) *cobra.Command {
	var indent bool
	c := &cobra.Command{
		Use:   "json [file]",
		Short: "Sanitize every string and key in a JSON document",
		Long: `Sanitize every string value and object key in a JSON document, such as an
exported settings file, before it is trusted. Key order and numbers are kept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out, err := a.sanitizer.SanitizeJSONBytes(data)
			if err != nil {
				return err
			}
			if indent {
				var buf bytes.Buffer
				if err := json.Indent(&buf, out, "", "  "); err != nil {
					return fmt.Errorf("indent json: %w", err)
				}
				out = buf.Bytes()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	c.Flags().BoolVar(&indent, "indent", false, "pretty-print the output")
	return c
}

func newStripCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "strip [file]",
		Short: "Remove all markup and print the remaining text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.sanitizer.StripTags(string(data)))
			return err
		},
	}
}
