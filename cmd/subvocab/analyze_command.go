package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [subtitle-file]",
		Short: "Annotate the vocabulary of a subtitle file or of stdin",
		Long: "Annotate the vocabulary of a subtitle file (.srt, .vtt, .txt) or of plain text\n" +
			"read from stdin when no file is given. Prints a JSON array with one analysis per sentence.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, _, err := components(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				text, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				result, err := c.Analysis.Analyze(cmd.Context(), string(text))
				if err != nil {
					return err
				}
				return writeJSON(cmd, result)
			}

			path := args[0]
			if !cfg.Subtitles.IsSupportedFormat(path) {
				return fmt.Errorf("unsupported file format %q", filepath.Ext(path))
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			result, err := c.Analysis.AnalyzeFile(cmd.Context(), filepath.Base(path), string(content))
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}
	return cmd
}
