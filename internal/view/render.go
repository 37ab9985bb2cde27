package view

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/viperproject/viper-ide-sub004/internal/model"
	"github.com/viperproject/viper-ide-sub004/internal/symbex"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const ellipsis = "…"

// Options controls Render.
type Options struct {
	Format   string              // FormatText (default), FormatJSON or FormatYAML
	MaxWidth int                 // text only: display columns per line, 0 = unlimited
	Filter   *symbex.ChunkFilter // optional heap chunk selection
}

// Render writes v in the requested format. v is usually a Decode result or
// a symbex.StateDiff.
func Render(w io.Writer, v any, opts Options) error {
	if opts.Filter != nil {
		v = applyFilter(v, opts.Filter)
	}

	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		return writeLines(w, Text(v), opts.MaxWidth)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Project(v))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Project(v)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// Text renders v as human-readable text ending in a newline.
func Text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []*symbex.Record:
		return recordsText(v)
	case *symbex.State:
		return v.String()
	case symbex.StateDiff:
		return v.String()
	case fmt.Stringer:
		return v.String() + "\n"
	default:
		return fmt.Sprintf("%v\n", v)
	}
}

func recordsText(records []*symbex.Record) string {
	var b strings.Builder
	_ = symbex.Walk(records, func(r *symbex.Record, depth int) error {
		indent := strings.Repeat("  ", depth)
		b.WriteString(indent)
		if r.Type != "" {
			b.WriteString(r.Type)
			if r.Kind != "" {
				b.WriteString(" (" + r.Kind + ")")
			}
			b.WriteString(": ")
		}
		b.WriteString(r.Value)
		if r.Open {
			b.WriteString(" [open]")
		}
		b.WriteString("\n")

		if r.Prestate != nil {
			for _, line := range strings.Split(strings.TrimSuffix(r.Prestate.String(), "\n"), "\n") {
				b.WriteString(indent + "  | " + line + "\n")
			}
		}
		if r.LastSMTQuery != nil {
			b.WriteString(indent + "  smt: " + r.LastSMTQuery.String() + "\n")
		}
		return nil
	})
	return b.String()
}

// writeLines writes text line by line, truncating each line to maxWidth
// display columns when maxWidth > 0.
func writeLines(w io.Writer, text string, maxWidth int) error {
	bw := bufio.NewWriter(w)
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if maxWidth > 0 {
			body := strings.TrimSuffix(line, "\n")
			if runewidth.StringWidth(body) > maxWidth {
				line = runewidth.Truncate(body, maxWidth, ellipsis) + "\n"
			}
		}
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func applyFilter(v any, f *symbex.ChunkFilter) any {
	switch v := v.(type) {
	case *symbex.State:
		return f.ApplyState(v)
	case []*symbex.Record:
		return filterRecords(v, f)
	case symbex.StateDiff:
		v.AddedChunks = f.Apply(v.AddedChunks)
		v.RemovedChunks = f.Apply(v.RemovedChunks)
		return v
	case model.HeapChunk:
		if !f.Match(v) {
			return nil
		}
		return v
	default:
		return v
	}
}

func filterRecords(records []*symbex.Record, f *symbex.ChunkFilter) []*symbex.Record {
	out := make([]*symbex.Record, len(records))
	for i, r := range records {
		c := *r
		if c.Prestate != nil {
			c.Prestate = f.ApplyState(c.Prestate)
		}
		c.Children = filterRecords(r.Children, f)
		out[i] = &c
	}
	return out
}
