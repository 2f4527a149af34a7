package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/dryrun"
	"github.com/splashkit/unsplash-cli/internal/iocontext"
	"github.com/splashkit/unsplash-cli/internal/outfmt"
	"github.com/splashkit/unsplash-cli/internal/urlparse"
)

// getClient creates an API client from the resolved profile and environment.
func getClient() (*api.Client, error) {
	return newClientFactory().client()
}

// newFormatter returns a formatter writing to the command's streams.
func newFormatter(cmd *cobra.Command) *outfmt.Formatter {
	ioStreams := iocontext.GetIO(cmd.Context())
	return outfmt.NewFormatter(cmd.Context(), ioStreams.Out, ioStreams.ErrOut)
}

// printJSON outputs data as JSON, JSON lines or through --template, with
// --jq applied.
func printJSON(cmd *cobra.Command, v any) error {
	return newFormatter(cmd).Output(v)
}

// isJSON checks if the command context wants JSON or JSON lines output
func isJSON(cmd *cobra.Command) bool {
	return outfmt.IsJSON(cmd.Context())
}

// isStructured reports whether output goes through printJSON rather than
// a text rendering.
func isStructured(cmd *cobra.Command) bool {
	return newFormatter(cmd).Structured()
}

func printAction(cmd *cobra.Command, action, resource, id, name string) {
	if flags.Quiet || isStructured(cmd) {
		return
	}

	ioStreams := iocontext.GetIO(cmd.Context())
	message := fmt.Sprintf("%s %s", action, resource)
	if id != "" {
		message = fmt.Sprintf("%s %s", message, id)
	}
	if name != "" {
		message = fmt.Sprintf("%s: %s", message, name)
	}
	_, _ = fmt.Fprintln(ioStreams.Out, message)
}

// printHint writes an informational line to stderr unless --quiet is set.
func printHint(cmd *cobra.Command, format string, args ...any) {
	if flags.Quiet {
		return
	}
	ioStreams := iocontext.GetIO(cmd.Context())
	_, _ = fmt.Fprintf(ioStreams.ErrOut, format+"\n", args...)
}

// cmdContext returns the command context
func cmdContext(cmd *cobra.Command) context.Context {
	return cmd.Context()
}

// maybeDryRun prints preview and reports true when --dry-run is set.
func maybeDryRun(cmd *cobra.Command, preview *dryrun.Preview) (bool, error) {
	if !dryrun.IsEnabled(cmd.Context()) {
		return false, nil
	}
	if preview == nil {
		preview = &dryrun.Preview{}
	}
	if isStructured(cmd) {
		return true, printJSON(cmd, preview.Map())
	}

	ioStreams := iocontext.GetIO(cmd.Context())
	preview.Write(ioStreams.Out)
	return true, nil
}

// previewCall builds the dry-run preview of the request a mutation would
// send.
func previewCall(client *api.Client, operation, resource string, endpoint api.Endpoint, params api.Parameters) *dryrun.Preview {
	return dryrun.FromRequest(operation, resource, client.PreviewRequest(endpoint, params))
}

func anyFlagChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if flagOrAliasChanged(cmd, name) {
			return true
		}
	}
	return false
}

func boolPtrIfChanged(cmd *cobra.Command, flag string, value bool) *bool {
	if flagOrAliasChanged(cmd, flag) {
		return &value
	}
	return nil
}

func stringPtrIfChanged(cmd *cobra.Command, flag string, value string) *string {
	if flagOrAliasChanged(cmd, flag) {
		return &value
	}
	return nil
}

func intPtrIfChanged(cmd *cobra.Command, flag string, value int) *int {
	if flagOrAliasChanged(cmd, flag) {
		return &value
	}
	return nil
}

// aliasBridgeValue wraps a pflag.Value so that Set() on the alias also
// marks the canonical flag as Changed. This lets aliases satisfy Cobra's
// MarkFlagRequired check.
type aliasBridgeValue struct {
	pflag.Value
	canonical *pflag.Flag
}

func (v *aliasBridgeValue) Set(s string) error {
	if err := v.Value.Set(s); err != nil {
		return err
	}
	v.canonical.Changed = true
	return nil
}

// aliasBridgeSliceValue also forwards pflag.SliceValue when the
// underlying Value supports it.
type aliasBridgeSliceValue struct {
	aliasBridgeValue
	slice pflag.SliceValue
}

func (v *aliasBridgeSliceValue) Append(s string) error     { return v.slice.Append(s) }
func (v *aliasBridgeSliceValue) Replace(ss []string) error { return v.slice.Replace(ss) }
func (v *aliasBridgeSliceValue) GetSlice() []string        { return v.slice.GetSlice() }

// flagAlias registers a hidden alias for an existing flag. Both flags share
// the same underlying Value, so setting either one sets both.
func flagAlias(fs *pflag.FlagSet, name, alias string) {
	f := fs.Lookup(name)
	if f == nil {
		panic(fmt.Sprintf("flagAlias: flag %q not found", name))
	}
	a := *f
	a.Name = alias
	a.Shorthand = ""
	a.Usage = ""
	a.Hidden = true
	bridge := &aliasBridgeValue{Value: f.Value, canonical: f}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		a.Value = &aliasBridgeSliceValue{aliasBridgeValue: *bridge, slice: sv}
	} else {
		a.Value = bridge
	}
	// The alias is never independently required.
	newAnn := map[string][]string{"alias-of": {name}}
	for k, v := range f.Annotations {
		if k == cobra.BashCompOneRequiredFlag {
			continue
		}
		newAnn[k] = v
	}
	a.Annotations = newAnn
	fs.AddFlag(&a)
}

// flagOrAliasChanged returns true if the named flag or any of its
// hidden aliases was explicitly set by the user.
func flagOrAliasChanged(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Changed(name) || cmd.InheritedFlags().Changed(name) {
		return true
	}

	aliasChanged := func(fs *pflag.FlagSet) bool {
		found := false
		fs.VisitAll(func(f *pflag.Flag) {
			if found {
				return
			}
			if ann, ok := f.Annotations["alias-of"]; ok && len(ann) > 0 && ann[0] == name {
				if fs.Changed(f.Name) {
					found = true
				}
			}
		})
		return found
	}

	return aliasChanged(cmd.Flags()) || aliasChanged(cmd.InheritedFlags())
}

// splitCommaList splits "a, b,,c" into [a b c].
func splitCommaList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// resolveIDArg accepts a bare id or an unsplash.com URL pointing at a
// resource of wantType.
func resolveIDArg(arg, wantType string) (string, error) {
	id, err := urlparse.ResolveID(arg, wantType)
	if err != nil {
		return "", api.NewStructuredErrorWithContext(api.ErrValidation, err.Error(),
			map[string]any{"argument": arg, "expected": wantType})
	}
	if id == "" {
		return "", api.NewStructuredErrorWithContext(api.ErrValidation,
			fmt.Sprintf("%s id is required", wantType), map[string]any{"expected": wantType})
	}
	return id, nil
}

func resolveIDArgs(args []string, wantType string) ([]string, error) {
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := resolveIDArg(arg, wantType)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intStr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func boolStr(p *bool) string {
	if p == nil {
		return ""
	}
	return strconv.FormatBool(*p)
}

// formatTime renders t as a UTC date and time, or "" when t is zero.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

// errAlreadyHandled is a sentinel error indicating the error was already
// printed to stderr. Commands wrapped by RunE return it so Cobra reports
// failure without printing again.
var errAlreadyHandled = errors.New("error already handled")

type handledError struct {
	err      error
	exitCode int
}

func (e *handledError) Error() string {
	return e.err.Error()
}

func (e *handledError) Unwrap() error {
	return errAlreadyHandled
}

func (e *handledError) ExitCode() int {
	return e.exitCode
}

// printJSONErr writes {"error": ...} to stderr.
func printJSONErr(cmd *cobra.Command, structured *api.StructuredError) error {
	ioStreams := iocontext.GetIO(cmd.Context())
	return outfmt.WriteJSON(ioStreams.ErrOut, map[string]any{"error": structured})
}

// RunE wraps a command function with enhanced error handling
func RunE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		if isJSON(cmd) {
			if structured := structuredError(err); structured != nil {
				_ = printJSONErr(cmd, structured)
			}
		} else {
			ioStreams := iocontext.GetIO(cmd.Context())
			_, _ = fmt.Fprint(ioStreams.ErrOut, HandleError(err))
		}
		// The original error stays reachable for tests and ExitCode.
		return &handledError{err: err, exitCode: ExitCode(err)}
	}
}
