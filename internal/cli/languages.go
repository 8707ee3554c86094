package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/daipendency/daipendency/pkg/languages"
)

// languagesCommand lists the supported languages in discovery order.
func (c *CLI) languagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Long: `List supported languages in the order they are probed when --language is
omitted. The first column is the value accepted by --language.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), languagesTable(languages.Default()))
			return nil
		},
	}
}

func languagesTable(reg *languages.Registry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("LANGUAGE", "NAME")

	for _, cfg := range reg.All() {
		t.Row(cfg.Language.String(), cfg.Name)
	}
	return t.Render()
}
