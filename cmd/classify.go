package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ouiplayer/internal/player"
	"ouiplayer/internal/provider"
)

var errNoMatch = errors.New("no provider matches")

var classifyCmd = &cobra.Command{
	Use:   "classify <url>",
	Short: "Print the provider, type and id of a video URL",
	Long: `Print the provider, type and id of a video URL.
Exits with an error when no provider recognises the URL.`,
	Args: cobra.ExactArgs(1),
	RunE: classifyRun,
}

func init() {
	classifyCmd.Flags().StringVarP(&flagProvider, "provider", "p", "", "Only try this provider")
}

func classifyRun(cmd *cobra.Command, args []string) error {
	atts := map[string]string{"play": args[0]}
	if flagProvider != "" {
		atts["provider"] = flagProvider
	}

	// Classification reads no preferences.
	p := newPlayer(provider.NewRegistry(), nil)
	m, ok, err := p.Match(player.Request{Atts: atts})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", errNoMatch, args[0])
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", m.Provider, m.Type, m.ID)
	return nil
}
