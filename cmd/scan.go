package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ouiplayer/internal/httputil"
	"ouiplayer/internal/provider"
	"ouiplayer/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan [file|https-url]",
	Short: "List the video links found in an HTML file, page URL or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  scanRun,
}

func scanRun(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	switch {
	case len(args) == 1 && isPageURL(args[0]):
		logger.Debug("fetching page", "url", args[0])
		body, err := httputil.GetPage(cmd.Context(), httputil.NewClient(), args[0])
		if err != nil {
			return err
		}
		r = bytes.NewReader(body)
	case len(args) == 1 && args[0] != "-":
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	found, err := scan.Reader(r, provider.NewRegistry())
	if err != nil {
		return err
	}
	logger.Debug("scan finished", "found", len(found))

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(found)
	}

	if len(found) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No video links found.")
		return nil
	}
	for _, f := range found {
		fmt.Fprintln(out, scan.FormatDisplay(f))
	}
	return nil
}

// isPageURL reports whether a scan argument names a remote page.
// Plain HTTP is accepted here so the fetch can reject it with a clear error.
func isPageURL(arg string) bool {
	return strings.HasPrefix(arg, "https://") || strings.HasPrefix(arg, "http://")
}
