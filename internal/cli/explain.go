package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/philipp01105/patternlog/formatter/pattern"
)

func (a *app) newExplainCommand() *cobra.Command {
	var counter bool

	cmd := &cobra.Command{
		Use:   "explain [pattern]",
		Short: "Print the operations a pattern compiles to",
		Long: `Compile a pattern and print one line per operation: its kind, its
minimum width and, for literal text, the text itself. Without an argument
the configured pattern is explained.

Example:
  nlogfmt explain "[%8n] %v"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := a.v.GetString("pattern")
			if len(args) == 1 {
				src = args[0]
			}
			p := pattern.Compile(src,
				pattern.WithTimeReference(a.timeReference()),
				pattern.WithMessageCounter(counter),
			)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tWIDTH\tTEXT")
			for _, op := range p.Ops() {
				text := ""
				if op.Kind == pattern.KindLiteral {
					text = strconv.Quote(op.Text)
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", op.Kind, op.Width, text)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&counter, "counter", true, "compile %i as the message counter")
	return cmd
}

// timeReference maps the utc setting to a pattern time reference
func (a *app) timeReference() pattern.TimeReference {
	if a.v.GetBool("utc") {
		return pattern.UTC
	}
	return pattern.Local
}
