package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/subvocab-backend/internal/domain"
	"github.com/heartmarshall/subvocab-backend/internal/service/subtitle"
)

func newFetchCommand() *cobra.Command {
	var language string
	var autoTranslate bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fetch <youtube-url>",
		Short: "Download the subtitles of a YouTube video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, _, err := components(cmd.Context())
			if err != nil {
				return err
			}

			sub, err := c.Subtitles.Fetch(cmd.Context(), subtitle.FetchInput{
				URL:           args[0],
				Language:      language,
				AutoTranslate: autoTranslate,
			})
			if err != nil {
				if diag := domain.DiagnosticOf(err); diag != "" {
					return fmt.Errorf("%w\n%s", err, diag)
				}
				return err
			}

			if asJSON {
				return writeJSON(cmd, sub)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), sub.Content)
			return err
		},
	}

	cmd.Flags().StringVarP(&language, "lang", "l", "", "Subtitle language code (default: video's own)")
	cmd.Flags().BoolVar(&autoTranslate, "auto", false, "Also accept auto-generated subtitles")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print {content,title,language,format} as JSON")

	return cmd
}
