package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/patternlog/core"
	"github.com/philipp01105/patternlog/formatter"
	"github.com/philipp01105/patternlog/handler"
	"github.com/philipp01105/patternlog/logger"
)

// renderOptions are the render flags that viper does not manage
type renderOptions struct {
	level   string
	json    bool
	follow  string
	output  string
	maxSize int
	color   string
}

func (a *app) newRenderCommand() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [message...]",
		Short: "Render messages or log lines through the pattern",
		Long: `Render each message argument as one log record. Without arguments,
every line read from stdin (or from --follow FILE) becomes a record.

With --json each input line is decoded as a JSON object. The keys
level|severity, msg|message, time|ts|timestamp (RFC 3339 or Unix seconds),
logger|name, thread|tid and id|seq fill the record; other keys are
appended as key=value fields.

Examples:
  nlogfmt render -n api -l warn "disk almost full"
  nlogfmt render -p "%T [%L] %v" < app.log
  nlogfmt render --json -f app.jsonl -o pretty.log --max-size 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringP("name", "n", "", "logger name for records without one")
	f.StringVarP(&opts.level, "level", "l", "info", "level for records without one")
	f.BoolVar(&opts.json, "json", false, "decode input lines as JSON log records")
	f.StringVarP(&opts.follow, "follow", "f", "", "read FILE and keep reading appended lines until interrupted")
	f.StringVarP(&opts.output, "output", "o", "", "write to FILE, rotated by size, instead of stdout")
	f.IntVar(&opts.maxSize, "max-size", 100, "rotate --output after this many megabytes")
	f.StringVar(&opts.color, "color", "auto", "colour lines by level: auto, always or never")
	cobra.CheckErr(a.v.BindPFlag("name", f.Lookup("name")))

	return cmd
}

func (a *app) runRender(cmd *cobra.Command, args []string, opts renderOptions) error {
	level, ok := core.ParseLevel(opts.level)
	if !ok || level == core.OffLevel {
		return fmt.Errorf("invalid level %q", opts.level)
	}
	color, err := parseColor(opts.color)
	if err != nil {
		return err
	}
	if len(args) > 0 && opts.follow != "" {
		return fmt.Errorf("--follow cannot be combined with message arguments")
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		rotating := &lumberjack.Logger{
			Filename: opts.output,
			MaxSize:  opts.maxSize,
		}
		defer rotating.Close()
		out = rotating
	}

	h := handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer: out,
		Formatter: formatter.NewPatternFormatter(formatter.Config{
			Pattern:        a.v.GetString("pattern"),
			UTC:            a.v.GetBool("utc"),
			MessageCounter: true,
		}),
		Color: color,
	})
	defer h.Close()

	r := &recordRenderer{
		handler: h,
		log: logger.NewBuilder().
			WithHandler(h).
			WithName(a.v.GetString("name")).
			WithLevel(core.TraceLevel).
			Build(),
		level: level,
		json:  opts.json,
		decoder: &lineDecoder{
			level: level,
			name:  a.v.GetString("name"),
			now:   time.Now,
		},
	}

	switch {
	case len(args) > 0:
		for _, msg := range args {
			if err := r.message(msg); err != nil {
				return err
			}
		}
		return nil
	case opts.follow != "":
		return followFile(cmd.Context(), opts.follow, r.line)
	default:
		return r.readLines(cmd.InOrStdin())
	}
}

// recordRenderer turns input into records for the handler
type recordRenderer struct {
	handler handler.Handler
	log     *logger.Logger
	level   core.Level
	json    bool
	decoder *lineDecoder
}

// message renders msg as a record of the default level
func (r *recordRenderer) message(msg string) error {
	r.log.Log(r.level, msg)
	return nil
}

// line renders one input line; empty lines are skipped
func (r *recordRenderer) line(line []byte) error {
	if len(strings.TrimSpace(string(line))) == 0 {
		return nil
	}
	if !r.json {
		return r.message(string(line))
	}

	entry := core.GetEntry()
	defer core.PutEntry(entry)
	if err := r.decoder.decode(line, entry); err != nil {
		return err
	}
	return r.handler.Handle(entry)
}

func (r *recordRenderer) readLines(in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := r.line(sc.Bytes()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func parseColor(s string) (handler.ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return handler.ColorAuto, nil
	case "always":
		return handler.ColorAlways, nil
	case "never":
		return handler.ColorNever, nil
	default:
		return handler.ColorAuto, fmt.Errorf("invalid color mode %q", s)
	}
}
