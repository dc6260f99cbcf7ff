package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ouiplayer/internal/provider"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle    = lipgloss.NewStyle().Width(16)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List providers and their player parameters",
	Args:  cobra.NoArgs,
	RunE:  providersRun,
}

func providersRun(cmd *cobra.Command, args []string) error {
	reg := provider.NewRegistry()
	out := cmd.OutOrStdout()

	if flagJSON {
		type entry struct {
			Name   string              `json:"name"`
			Src    string              `json:"src"`
			Params []provider.ParamDef `json:"params"`
		}
		var entries []entry
		for _, p := range reg.Providers() {
			ep := p.Params()
			entries = append(entries, entry{Name: p.Name(), Src: ep.Src, Params: ep.Params})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	styled := isTerminal(out)
	for i, p := range reg.Providers() {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printProvider(out, p, styled)
	}
	return nil
}

func printProvider(w io.Writer, p provider.Provider, styled bool) {
	ep := p.Params()

	heading := fmt.Sprintf("%s  %s", p.Name(), ep.Src)
	if styled {
		heading = headingStyle.Render(p.Name()) + "  " + dimStyle.Render(ep.Src)
	}
	fmt.Fprintln(w, heading)

	if len(ep.Params) == 0 {
		fmt.Fprintln(w, "  (no parameters)")
		return
	}
	for _, d := range ep.Params {
		name := fmt.Sprintf("%-16s", d.Name)
		if styled {
			name = nameStyle.Render(d.Name)
		}
		fmt.Fprintf(w, "  %s default=%q%s\n", name, d.Default, describeConstraint(d))
	}
}

func describeConstraint(d provider.ParamDef) string {
	switch {
	case len(d.Allowed) > 0:
		return " valid=" + strings.Join(d.Allowed, "|")
	case d.Kind != "":
		return " type=" + d.Kind
	default:
		return ""
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
