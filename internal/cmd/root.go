package cmd

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/splashkit/unsplash-cli/internal/config"
	"github.com/splashkit/unsplash-cli/internal/debug"
	"github.com/splashkit/unsplash-cli/internal/dryrun"
	"github.com/splashkit/unsplash-cli/internal/iocontext"
	"github.com/splashkit/unsplash-cli/internal/outfmt"
	"github.com/splashkit/unsplash-cli/internal/validation"
)

// defaultTimeout bounds a single HTTP request.
const defaultTimeout = 30 * time.Second

// rootFlags holds global CLI flags
type rootFlags struct {
	Output   string
	JQ       string
	Template string
	Debug    bool
	Profile  string
	Timeout  time.Duration
	DryRun   bool
	NoColor  bool
	Quiet    bool
}

// flags holds the global command flags. It is package-level state that is
// reset at the start of every Execute call; code reading it outside a
// command's RunE sees the previous run's values.
var flags = defaultFlags()

func defaultFlags() rootFlags {
	return rootFlags{
		Output:  "text",
		Timeout: defaultTimeout,
	}
}

//go:embed help.txt
var helpText string

// Execute runs the root command
func Execute(ctx context.Context, args []string) error {
	// Variables already exported win over .env values.
	if err := config.LoadEnv(); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}

	flags = defaultFlags()
	env, envErr := config.ReadEnv()

	root := &cobra.Command{
		Use:                "unsplash",
		Short:              "Command-line client for the Unsplash API",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true, // enhanceUnknownError provides did-you-mean
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envErr != nil {
				return envErr
			}
			ctx := cmd.Context()

			output, err := validation.ValidateEnum("output", flags.Output, validation.OutputModes)
			if err != nil {
				return err
			}
			if output == "" {
				output = "text"
			}
			if flags.JQ != "" && output == "text" {
				if flagOrAliasChanged(cmd, "output") {
					return fmt.Errorf("--jq requires --output json or jsonl")
				}
				output = "json"
			}
			mode, err := outfmt.Parse(output)
			if err != nil {
				return err
			}
			ctx = outfmt.WithMode(ctx, mode)

			ioStreams := iocontext.DefaultIO()
			ctx = iocontext.WithIO(ctx, ioStreams)
			cmd.SetOut(ioStreams.Out)
			cmd.SetErr(ioStreams.ErrOut)

			ctx = outfmt.WithColor(ctx, colorWanted(ioStreams))

			debugEnabled := flags.Debug || env.Debug
			debug.SetupLogger(debugEnabled)
			ctx = debug.WithDebug(ctx, debugEnabled)

			ctx = dryrun.WithDryRun(ctx, flags.DryRun)

			if flags.JQ != "" {
				ctx = outfmt.WithQuery(ctx, flags.JQ)
			}
			if flags.Template != "" {
				tmpl, err := loadTemplate(flags.Template)
				if err != nil {
					return err
				}
				ctx = outfmt.WithTemplate(ctx, tmpl)
			}

			if flags.Timeout < 0 {
				return fmt.Errorf("--timeout must be >= 0")
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetContext(ctx)
	root.SetArgs(args)
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd.Name() == root.Name() && !cmd.HasParent() {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), helpText)
			return
		}
		defaultHelp(cmd, args)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", flags.Output, "Output format: text|json|jsonl")
	pf.StringVar(&flags.JQ, "jq", "", "jq expression applied to JSON output")
	pf.StringVar(&flags.Template, "template", "", "Go template string (or @path) to render output")
	pf.BoolVar(&flags.Debug, "debug", false, "Enable debug logging (env UNSPLASH_DEBUG)")
	pf.StringVar(&flags.Profile, "profile", "", "Credential profile to use (env UNSPLASH_PROFILE)")
	pf.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP request timeout (e.g., 10s, 1m)")
	pf.BoolVar(&flags.DryRun, "dry-run", false, "Preview mutations without calling the API")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")

	flagAlias(pf, "output", "out")
	flagAlias(pf, "jq", "query")
	flagAlias(pf, "template", "tpl")
	flagAlias(pf, "dry-run", "dr")
	flagAlias(pf, "timeout", "to")

	root.AddCommand(newAuthCmd())
	root.AddCommand(newPhotosCmd())
	root.AddCommand(newCollectionsCmd())
	root.AddCommand(newUsersCmd())
	root.AddCommand(newMeCmd())
	root.AddCommand(newTopicsCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newOpenCmd())
	root.AddCommand(newRateLimitCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newVersionCmd())

	targetCmd, err := root.ExecuteC()
	if err != nil {
		if !errors.Is(err, errAlreadyHandled) {
			_, _ = fmt.Fprintln(root.ErrOrStderr(), enhanceUnknownError(err, root, targetCmd))
		}
		return err
	}
	return nil
}

// colorWanted reports whether table headers may use ANSI styling.
func colorWanted(streams *iocontext.IO) bool {
	if flags.NoColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return streams.IsTerminal()
}

func enhanceUnknownError(err error, root *cobra.Command, targetCmd *cobra.Command) string {
	msg := err.Error()

	if strings.Contains(msg, "unknown command") {
		unknown := extractQuoted(msg)
		if unknown != "" {
			parent := root
			if targetCmd != nil {
				parent = targetCmd
			}
			var names []string
			for _, c := range parent.Commands() {
				if c.IsAvailableCommand() || c.Name() == "help" {
					names = append(names, c.Name())
					names = append(names, c.Aliases...)
				}
			}
			if suggestion := suggestCommand(unknown, names); suggestion != "" {
				return fmt.Sprintf("%s\n\nDid you mean %q?", msg, suggestion)
			}
		}
	}

	if strings.Contains(msg, "unknown flag") || strings.Contains(msg, "unknown shorthand flag") {
		unknown := extractFlag(msg)
		if unknown != "" {
			seen := make(map[string]bool)
			var flagNames []string
			addFlags := func(fs *pflag.FlagSet) {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Hidden {
						return
					}
					name := "--" + f.Name
					if !seen[name] {
						seen[name] = true
						flagNames = append(flagNames, name)
					}
					if f.Shorthand != "" {
						short := "-" + f.Shorthand
						if !seen[short] {
							seen[short] = true
							flagNames = append(flagNames, short)
						}
					}
				})
			}
			helpCmd := "unsplash --help"
			if targetCmd != nil {
				addFlags(targetCmd.Flags())
				addFlags(targetCmd.InheritedFlags())
				if commandPath := strings.TrimSpace(targetCmd.CommandPath()); commandPath != "" {
					helpCmd = commandPath + " --help"
				}
			} else {
				addFlags(root.PersistentFlags())
			}
			if suggestion := suggestFlag(unknown, flagNames); suggestion != "" {
				return fmt.Sprintf("%s\n\nDid you mean %q?\nRun %q to see supported flags.", msg, suggestion, helpCmd)
			}
			return fmt.Sprintf("%s\n\nRun %q to see supported flags.", msg, helpCmd)
		}
	}

	return msg
}

func extractQuoted(s string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], '"')
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}

func extractFlag(s string) string {
	idx := strings.Index(s, "--")
	if idx < 0 {
		idx = strings.LastIndex(s, " -")
		if idx < 0 {
			return ""
		}
		rest := strings.TrimSpace(s[idx+1:])
		if end := strings.IndexByte(rest, ' '); end >= 0 {
			rest = rest[:end]
		}
		rest = strings.TrimRight(rest, ".,;:!?\"'")
		if strings.HasPrefix(rest, "-") && len(rest) > 1 {
			return rest
		}
		return ""
	}
	rest := s[idx:]
	end := strings.IndexByte(rest, ' ')
	if end < 0 {
		end = len(rest)
	}
	return strings.TrimRight(rest[:end], ".,;:!?\"'")
}

// loadTemplate returns tmpl, or the contents of the file when tmpl starts
// with '@'.
func loadTemplate(tmpl string) (string, error) {
	if !strings.HasPrefix(tmpl, "@") {
		return tmpl, nil
	}
	path := strings.TrimSpace(strings.TrimPrefix(tmpl, "@"))
	if path == "" {
		return "", fmt.Errorf("--template @path requires a file path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template %q: %w", path, err)
	}
	return string(data), nil
}
