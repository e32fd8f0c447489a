package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/dshills/codeintel/internal/intel/bracket"
	"github.com/dshills/codeintel/internal/intel/fold"
	"github.com/dshills/codeintel/internal/intel/indent"
)

// labelWidth bounds region labels in text output.
const labelWidth = 60

// regionDTO describes a fold region.
type regionDTO struct {
	Key         string `json:"key" yaml:"key"`
	StartLine   int    `json:"startLine" yaml:"startLine"`
	EndLine     int    `json:"endLine" yaml:"endLine"`
	StartColumn int    `json:"startColumn" yaml:"startColumn"`
	EndColumn   int    `json:"endColumn" yaml:"endColumn"`
	Kind        string `json:"kind" yaml:"kind"`
	Label       string `json:"label" yaml:"label"`
	Folded      bool   `json:"folded,omitempty" yaml:"folded,omitempty"`
}

func fromRegion(r fold.Region) regionDTO {
	return regionDTO{
		Key:         r.Key().String(),
		StartLine:   r.StartLine,
		EndLine:     r.EndLine,
		StartColumn: r.StartColumn,
		EndColumn:   r.EndColumn,
		Kind:        string(r.Kind),
		Label:       r.Label,
		Folded:      r.Folded,
	}
}

func (a *app) foldsCmd() *cobra.Command {
	var folded []string

	cmd := &cobra.Command{
		Use:   "folds [FILE]",
		Short: "List the foldable regions of a file",
		Long: `List the foldable regions of a file ordered by start line.

Use --folded to mark regions as folded by key ("<line>:<kind>"); the lines
they hide are reported in text output.

Examples:
  codeintel folds main.swift
  codeintel folds --folded 4:class -f json main.swift`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args)
			if err != nil {
				return err
			}
			defer doc.Close()

			for _, s := range folded {
				k, err := fold.ParseKey(s)
				if err != nil {
					return err
				}
				doc.SetFolded(k, true)
			}

			regions := doc.Folds()
			dtos := make([]regionDTO, 0, len(regions))
			for _, r := range regions {
				dtos = append(dtos, fromRegion(r))
			}
			return a.print(dtos, func(w io.Writer) error {
				for _, r := range regions {
					mark := " "
					if r.Folded {
						mark = "+"
					}
					if _, err := fmt.Fprintf(w, "%s %4d-%-4d %-12s %s\n", mark, r.StartLine, r.EndLine, r.Kind, r.DisplayLabel(labelWidth)); err != nil {
						return err
					}
				}
				if hidden := doc.HiddenLines(); len(hidden) > 0 {
					_, err := fmt.Fprintf(w, "hidden lines: %s\n", joinInts(hidden))
					return err
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&folded, "folded", nil, "fold keys to mark as folded (repeatable)")
	return cmd
}

// matchDTO describes a bracket match.
type matchDTO struct {
	Open      int    `json:"open" yaml:"open"`
	Close     int    `json:"close" yaml:"close"`
	OpenChar  string `json:"openChar" yaml:"openChar"`
	CloseChar string `json:"closeChar" yaml:"closeChar"`
	Matched   bool   `json:"matched" yaml:"matched"`
}

func (a *app) matchCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "match [FILE]",
		Short: "Find the bracket matching the one at a cursor offset",
		Long: `Find the bracket matching the one just before the cursor offset, or else
the one at it. Offsets are in runes. A side that could not be found is
reported as -1, or "none" in text output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args)
			if err != nil {
				return err
			}
			defer doc.Close()

			m, ok := doc.MatchBracket(offset)
			if !ok {
				return fmt.Errorf("no bracket at offset %d", offset)
			}
			dto := matchDTO{
				Open:      m.Open,
				Close:     m.Close,
				OpenChar:  string(m.OpenChar),
				CloseChar: string(m.CloseChar),
				Matched:   m.Matched(),
			}
			return a.print(dto, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s %s matched=%t\n",
					side(dto.OpenChar, m.Open), side(dto.CloseChar, m.Close), dto.Matched)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "cursor offset in runes")
	_ = cmd.MarkFlagRequired("offset")
	return cmd
}

func side(ch string, pos int) string {
	if pos == bracket.NoPosition {
		return ch + "@none"
	}
	return ch + "@" + strconv.Itoa(pos)
}

// indentDTO describes a computed indentation.
type indentDTO struct {
	Indent  string `json:"indent" yaml:"indent"`
	Columns int    `json:"columns" yaml:"columns"`
}

func (a *app) indentCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "indent [FILE]",
		Short: "Compute the indentation of the line containing an offset",
		Long: `Compute the whitespace for the line containing the rune offset, as if that
line had just been started with a newline. The result is printed quoted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args)
			if err != nil {
				return err
			}
			defer doc.Close()

			ws := doc.NewlineIndent(offset)
			dto := indentDTO{Indent: ws, Columns: indent.Columns(ws, doc.Language().TabWidth())}
			return a.print(dto, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, strconv.Quote(ws))
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "offset in runes")
	_ = cmd.MarkFlagRequired("offset")
	return cmd
}

func (a *app) reindentCmd() *cobra.Command {
	var (
		lines string
		diff  bool
		write bool
	)

	cmd := &cobra.Command{
		Use:   "reindent [FILE]",
		Short: "Re-indent a file",
		Long: `Re-indent every line of a file, or the lines given by --lines, and print
the result. --diff prints a line diff instead; --write saves the file.

Examples:
  codeintel reindent main.swift
  codeintel reindent --lines 10:20 --diff main.swift
  codeintel reindent --write main.swift`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args)
			if err != nil {
				return err
			}
			defer doc.Close()
			if write && doc.Path() == "" {
				return fmt.Errorf("--write: %w", errNoStdinPath)
			}

			before := doc.Text()
			if lines != "" {
				start, end, err := parseLineRange(lines)
				if err != nil {
					return err
				}
				_, err = doc.ReindentLines(start, end)
				if err != nil {
					return err
				}
			} else if _, err := doc.Reindent(); err != nil {
				return err
			}

			if write {
				if err := doc.Save(); err != nil {
					return err
				}
			}
			switch {
			case diff:
				_, err = io.WriteString(a.out, lineDiff(before, doc.Text()))
			case !write:
				_, err = io.WriteString(a.out, doc.Text())
			}
			return err
		},
	}
	cmd.Flags().StringVar(&lines, "lines", "", "1-based inclusive line range START:END")
	cmd.Flags().BoolVar(&diff, "diff", false, "print a line diff instead of the text")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	return cmd
}

// parseLineRange parses "START:END".
func parseLineRange(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid line range %q (want START:END)", s)
	}
	start, err1 := strconv.Atoi(strings.TrimSpace(a))
	end, err2 := strconv.Atoi(strings.TrimSpace(b))
	if err1 != nil || err2 != nil || start < 1 || end < start {
		return 0, 0, fmt.Errorf("invalid line range %q", s)
	}
	return start, end, nil
}

// lineDiff returns a line-level diff of before and after with " ", "-" and
// "+" prefixes. Identical inputs produce an empty string.
func lineDiff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	c1, c2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lineArray)

	var b strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			b.WriteString(prefix)
			b.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}
