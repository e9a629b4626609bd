package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/captcha/pkg/fonts"
)

// fontRow describes one font for display.
type fontRow struct {
	id     string
	family string
	glyphs int
	err    error
}

// fontsCommand creates the fonts command for listing and checking fonts.
func (c *CLI) fontsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts [font...]",
		Short: "List builtin fonts or check that fonts resolve",
		Long: `Without arguments, list the builtin fonts. With arguments, resolve each
font identifier (builtin:<name>, a file path or a system font name) and show
what it resolves to.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := args
			if len(ids) == 0 {
				ids = fonts.Builtins()
			}

			rows := inspectFonts(ids)
			fmt.Fprintln(cmd.OutOrStdout(), renderFontTable(rows))

			failed := 0
			for _, r := range rows {
				if r.err != nil {
					failed++
					loggerFromContext(cmd.Context()).Debug("font check failed", "font", r.id, "err", r.err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d fonts could not be loaded", failed, len(rows))
			}
			return nil
		},
	}
}

func inspectFonts(ids []string) []fontRow {
	rows := make([]fontRow, len(ids))
	for i, id := range ids {
		rows[i].id = id
		f, err := fonts.Parse(id)
		if err != nil {
			rows[i].err = err
			continue
		}
		rows[i].family = fonts.Family(f)
		rows[i].glyphs = f.NumGlyphs()
	}
	return rows
}

func renderFontTable(rows []fontRow) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	data := make([][]string, len(rows))
	for i, r := range rows {
		status := iconSuccess
		detail := fmt.Sprintf("%d", r.glyphs)
		if r.err != nil {
			status = iconError
			detail = r.err.Error()
		}
		data[i] = []string{status, r.id, r.family, detail}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Font", "Family", "Glyphs").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			if rows[row].err != nil {
				return lipgloss.NewStyle().Foreground(colorRed)
			}
			if col == 0 {
				return styleIconSuccess
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}
