package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagekit-go/pagekit/pkg/page"
)

func wrapCmd() *cobra.Command {
	var (
		pageSize int
		asList   bool
	)

	cmd := &cobra.Command{
		Use:   "wrap [file]",
		Short: "Preview how content splits into pages",
		Long: `Read a file (or stdin when no file is given) and print the page
boundaries a paginator would produce, one summary line per page.

With --list the input is treated as one entry per line and packed
entry-whole instead of word-wrapped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(args)
			if err != nil {
				return err
			}

			var segments []string
			if asList {
				entries := strings.Split(strings.TrimRight(content, "\n"), "\n")
				segments = page.Pack(entries, pageSize)
			} else {
				segments = page.Wrap(content, pageSize)
			}

			fmt.Printf("%d page(s) at size %d\n\n", len(segments), pageSize)
			for i, seg := range segments {
				p := page.Page{Content: seg}
				fmt.Printf("  %2d  %4d chars  %s\n", i+1, len(seg), p.Summary())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&pageSize, "page-size", "n", 4000, "Maximum characters per page")
	cmd.Flags().BoolVarP(&asList, "list", "l", false, "Pack whole lines instead of word-wrapping")

	return cmd
}

func readInput(args []string) (string, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}
