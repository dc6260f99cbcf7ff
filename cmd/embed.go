package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ouiplayer/internal/player"
	"ouiplayer/internal/provider"
)

var (
	flagProvider string
	flagWidth    string
	flagHeight   string
	flagRatio    string
	flagLabel    string
	flagLabelTag string
	flagWrapTag  string
	flagClass    string
	flagParams   []string
	flagFields   []string
)

var embedCmd = &cobra.Command{
	Use:   "embed [url|id]",
	Short: "Render the iframe player for a video URL or id",
	Long: `Render the iframe player for a video URL or id.
Without an argument, the item is read from the article field named by the
oui_player_custom_field preference (see --field).`,
	Args: cobra.MaximumNArgs(1),
	RunE: embedRun,
}

func init() {
	f := embedCmd.Flags()
	f.StringVarP(&flagProvider, "provider", "p", "", "Force a provider: youtube | vimeo | generic")
	f.StringVarP(&flagWidth, "width", "W", "", "Player width")
	f.StringVarP(&flagHeight, "height", "H", "", "Player height")
	f.StringVarP(&flagRatio, "ratio", "r", "", "Aspect ratio, e.g. 4:3")
	f.StringVar(&flagLabel, "label", "", "Label shown before the player")
	f.StringVar(&flagLabelTag, "labeltag", "", "Element wrapping the label")
	f.StringVar(&flagWrapTag, "wraptag", "", "Element wrapping the player")
	f.StringVar(&flagClass, "class", "", "Class of the wrapping element")
	f.StringArrayVarP(&flagParams, "param", "P", nil, "Player parameter as name=value (repeatable)")
	f.StringArrayVar(&flagFields, "field", nil, "Article field as name=value (repeatable)")
}

func embedRun(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(args)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out, err := newPlayer(provider.NewRegistry(), store).Embed(req)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{"html": out})
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// buildRequest turns arguments and flags into tag attributes.
func buildRequest(args []string) (player.Request, error) {
	atts, err := parsePairs(flagParams)
	if err != nil {
		return player.Request{}, fmt.Errorf("--param: %w", err)
	}
	raw, err := parsePairs(flagFields)
	if err != nil {
		return player.Request{}, fmt.Errorf("--field: %w", err)
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		fields[strings.ToLower(k)] = v
	}

	named := map[string]string{
		"provider": flagProvider,
		"width":    flagWidth,
		"height":   flagHeight,
		"ratio":    flagRatio,
		"label":    flagLabel,
		"labeltag": flagLabelTag,
		"wraptag":  flagWrapTag,
		"class":    flagClass,
	}
	if len(args) > 0 {
		named["play"] = args[0]
	}
	for k, v := range named {
		if v != "" {
			atts[k] = v
		}
	}

	return player.Request{Atts: atts, Fields: fields}, nil
}

// parsePairs splits name=value arguments.
func parsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", p)
		}
		out[name] = value
	}
	return out, nil
}
