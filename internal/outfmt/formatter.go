package outfmt

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
)

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Formatter handles output formatting for commands.
type Formatter struct {
	ctx       context.Context
	out       io.Writer
	errOut    io.Writer
	tabWriter *tabwriter.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(ctx context.Context, out, errOut io.Writer) *Formatter {
	return &Formatter{
		ctx:       ctx,
		out:       out,
		errOut:    errOut,
		tabWriter: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0),
	}
}

// Structured reports whether data goes through Output rather than a table:
// JSON modes, or any mode with a template.
func (f *Formatter) Structured() bool {
	return IsJSON(f.ctx) || GetTemplate(f.ctx) != ""
}

// Output writes data as JSON, JSON lines or through the template set in
// the context. In text mode without a template it writes nothing.
func (f *Formatter) Output(data any) error {
	query := GetQuery(f.ctx)
	if tmpl := GetTemplate(f.ctx); tmpl != "" {
		filtered, err := ApplyQuery(f.ctx, data, query)
		if err != nil {
			return err
		}
		return WriteTemplate(f.out, filtered, tmpl)
	}
	switch ModeFromContext(f.ctx) {
	case JSON:
		return WriteJSONFiltered(f.ctx, f.out, data, query)
	case JSONL:
		return WriteJSONLFiltered(f.ctx, f.out, data, query)
	}
	return nil
}

// StartTable writes table headers. Returns true if in text mode.
func (f *Formatter) StartTable(headers []string) bool {
	if f.Structured() {
		return false
	}

	bold := ColorEnabled(f.ctx)
	for i, h := range headers {
		if i > 0 {
			_, _ = fmt.Fprint(f.tabWriter, "\t")
		}
		if bold {
			// tabwriter counts escape bytes as width; wrapping every
			// header keeps the columns aligned.
			_, _ = fmt.Fprint(f.tabWriter, ansiBold+h+ansiReset)
			continue
		}
		_, _ = fmt.Fprint(f.tabWriter, h)
	}
	_, _ = fmt.Fprintln(f.tabWriter)
	return true
}

// Row writes a single row to the table.
func (f *Formatter) Row(columns ...string) {
	for i, col := range columns {
		if i > 0 {
			_, _ = fmt.Fprint(f.tabWriter, "\t")
		}
		_, _ = fmt.Fprint(f.tabWriter, col)
	}
	_, _ = fmt.Fprintln(f.tabWriter)
}

// EndTable flushes the table output.
func (f *Formatter) EndTable() error {
	return f.tabWriter.Flush()
}

// KeyValue writes aligned "key: value" lines for a single resource.
func (f *Formatter) KeyValue(pairs ...[2]string) error {
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		_, _ = fmt.Fprintf(f.tabWriter, "%s:\t%s\n", p[0], p[1])
	}
	return f.tabWriter.Flush()
}

// Empty writes a message to stderr indicating no results.
func (f *Formatter) Empty(message string) {
	_, _ = fmt.Fprintln(f.errOut, message)
}
