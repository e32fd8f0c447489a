package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/codeintel/internal/intel/highlight"
	"github.com/dshills/codeintel/internal/intel/language"
)

// languageDTO describes a registered language.
type languageDTO struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Aliases    []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Extensions []string `json:"extensions" yaml:"extensions"`
	FoldStyle  string   `json:"foldStyle" yaml:"foldStyle"`
	IndentSize int      `json:"indentSize" yaml:"indentSize"`
	UseTabs    bool     `json:"useTabs" yaml:"useTabs"`
}

func (a *app) languagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the registered languages",
		Long: `List every registered language with its extensions and indentation.

Languages loaded from the configured languageDirs are included.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			langs := a.engine.Registry().Languages()
			dtos := make([]languageDTO, 0, len(langs))
			for _, l := range langs {
				dtos = append(dtos, languageDTO{
					ID:         l.ID,
					Name:       l.Name,
					Aliases:    l.Aliases,
					Extensions: l.Extensions,
					FoldStyle:  l.FoldStyle.String(),
					IndentSize: l.IndentSize(),
					UseTabs:    l.Indent.UseTabs,
				})
			}
			return a.print(dtos, func(w io.Writer) error {
				for _, d := range dtos {
					if _, err := fmt.Fprintf(w, "%-12s %-14s %s\n", d.ID, d.Name, strings.Join(d.Extensions, " ")); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *app) themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in highlight themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := highlight.ThemeNames()
			current := a.engine.Theme().Name
			return a.print(names, func(w io.Writer) error {
				for _, n := range names {
					mark := " "
					if strings.EqualFold(n, current) {
						mark = "*"
					}
					if _, err := fmt.Fprintf(w, "%s %s\n", mark, n); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *app) exportLanguageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-language ID",
		Short: "Print a built-in language definition as YAML",
		Long: `Print a built-in language definition as YAML.

The output is a starting point for a custom definition file. Place the edited
file in a directory listed under languageDirs to load it on top of the
built-in languages.

Examples:
  codeintel export-language swift > ~/.config/codeintel/languages/swift.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			want := strings.ToLower(args[0])
			for _, d := range language.Builtin() {
				if d.ID != want && !containsFold(d.Aliases, want) {
					continue
				}
				data, err := language.MarshalDefinition(d)
				if err != nil {
					return err
				}
				_, err = a.out.Write(data)
				return err
			}
			return fmt.Errorf("no built-in language %q", args[0])
		},
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
