package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"deckwright/internal/layout"
	"deckwright/internal/theme"
)

func newThemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "themes",
		Short:       "List visual themes",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := theme.IDs()
			rows := make([][]string, 0, len(ids))
			for _, id := range ids {
				t := theme.Lookup(id)
				name := t.DisplayName()
				if id == theme.Default {
					name += " (default)"
				}
				rows = append(rows, []string{
					t.ID,
					name,
					"#" + t.Background.Hex(),
					"#" + t.Accent.Hex(),
					yesNo(t.UseGradient),
					t.FontFamily,
				})
			}
			headers := []string{"ID", "Name", "Background", "Accent", "Gradient", "Font"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
			return nil
		},
	}
}

func newLayoutsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "layouts",
		Short:       "List slide layouts and the areas each one places",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(layout.All))
			for _, name := range layout.All {
				tmpl := layout.TemplateFor(name)
				rows = append(rows, []string{string(name), layoutAreas(tmpl), layoutStyle(tmpl)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Layout", "Areas", "Style"}, rows, nil))
			return nil
		},
	}
}

func layoutAreas(t layout.Template) string {
	var areas []string
	for _, area := range []struct {
		name string
		box  *layout.Box
	}{
		{"title", t.Title},
		{"subtitle", t.Subtitle},
		{"body", t.Body},
		{"image", t.Image},
		{"caption", t.Caption},
	} {
		if area.box != nil {
			areas = append(areas, area.name)
		}
	}
	return strings.Join(areas, ", ")
}

func layoutStyle(t layout.Template) string {
	var style []string
	if t.AccentLeft {
		style = append(style, "left accent")
	}
	if t.AccentTop {
		style = append(style, "top accent")
	}
	if t.CardStyle {
		style = append(style, "card")
	}
	if t.HeroFullImage {
		style = append(style, "full-bleed image")
	}
	if len(style) == 0 {
		return "-"
	}
	return strings.Join(style, ", ")
}
