package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/dshills/codeintel/internal/config"
	"github.com/dshills/codeintel/internal/intel/highlight"
	"github.com/dshills/codeintel/internal/intel/language"
)

// spanDTO describes one highlighted run.
type spanDTO struct {
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Kind  string `json:"kind" yaml:"kind"`
	Color string `json:"color" yaml:"color"`
	Text  string `json:"text" yaml:"text"`
}

func (a *app) highlightCmd() *cobra.Command {
	var (
		theme     string
		themeFile string
		color     bool
	)

	cmd := &cobra.Command{
		Use:   "highlight [FILE]",
		Short: "Print a file with syntax colors",
		Long: `Print a file with syntax colors from the configured theme.

Text output uses ANSI colors when writing to a terminal, or always with
--color. JSON and YAML output list the highlighted runs with rune offsets.

Examples:
  codeintel highlight main.swift
  codeintel highlight --theme dracula main.go
  codeintel highlight --theme-file Solarized.tmTheme -f json main.py`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case themeFile != "":
				t, err := highlight.LoadTMTheme(config.ExpandPath(themeFile))
				if err != nil {
					return err
				}
				a.engine.SetTheme(t)
			case theme != "":
				if err := a.engine.SetThemeName(theme); err != nil {
					return err
				}
			}

			doc, err := a.open(args)
			if err != nil {
				return err
			}
			defer doc.Close()

			text := doc.Text()
			spans := highlight.Flatten(doc.Highlight())
			runes := []rune(text)
			dtos := make([]spanDTO, 0, len(spans))
			for _, s := range spans {
				dtos = append(dtos, spanDTO{
					Start: s.Start,
					End:   s.End,
					Kind:  s.Kind.String(),
					Color: hexColor(s.Color),
					Text:  string(runes[s.Start:s.End]),
				})
			}
			return a.print(dtos, func(w io.Writer) error {
				r := lipgloss.NewRenderer(w)
				if color {
					r.SetColorProfile(termenv.TrueColor)
				}
				_, err := io.WriteString(w, render(r, runes, spans))
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&theme, "theme", "t", "", "built-in theme name")
	cmd.Flags().StringVar(&themeFile, "theme-file", "", "TextMate .tmTheme file")
	cmd.Flags().BoolVar(&color, "color", false, "force ANSI colors")
	return cmd
}

// render styles each run with its color. Runs are rendered line by line so
// the renderer never pads multi-line blocks.
func render(r *lipgloss.Renderer, runes []rune, spans []highlight.Span) string {
	var b strings.Builder
	for _, s := range spans {
		style := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
		if hex := hexColor(s.Color); hex != "" {
			style = style.Foreground(lipgloss.Color(hex))
		}
		switch s.Kind {
		case language.TokenKeyword:
			style = style.Bold(true)
		case language.TokenComment:
			style = style.Italic(true)
		}
		for i, line := range strings.Split(string(runes[s.Start:s.End]), "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}

// hexColor formats an RGB color as #rrggbb, or "" for other colors.
func hexColor(c tcell.Color) string {
	h := c.Hex()
	if h < 0 {
		return ""
	}
	return fmt.Sprintf("#%06x", h)
}
