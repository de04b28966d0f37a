package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dunglas/zval"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// registry collects the counters printed by --stats.
var registry *prometheus.Registry

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "zval",
		Short: "Inspects PHP value semantics",
		Long: `
Evaluates PHP comparisons, natural sorting, array key canonicalization and
value dumps from the command line. Operands are read as YAML scalars unless
--strings is given.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolP("debug", "v", false, "Enable verbose debug logs")
	root.PersistentFlags().Int("precision", 14, "Significant digits used when converting floats to strings")
	root.PersistentFlags().String("locale", "", "Locale used by the locale comparison mode (BCP 47 tag)")
	root.PersistentFlags().Bool("stats", false, "Print runtime counters to stderr on exit")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initRuntime(cmd)
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if stats, _ := cmd.Flags().GetBool("stats"); stats {
			printStats(cmd.ErrOrStderr())
		}
		zval.Shutdown()
	}

	root.AddCommand(newCompareCommand(), newNatsortCommand(), newKeyCommand(), newDumpCommand())

	return root
}

func initRuntime(cmd *cobra.Command) error {
	debug, _ := cmd.Flags().GetBool("debug")
	precision, _ := cmd.Flags().GetInt("precision")
	loc, _ := cmd.Flags().GetString("locale")

	logger := zap.NewNop()
	if debug {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	tag := language.Und
	if loc != "" {
		var err error
		if tag, err = language.Parse(loc); err != nil {
			return fmt.Errorf("invalid locale %q: %w", loc, err)
		}
	}

	registry = prometheus.NewRegistry()

	return zval.Init(
		zval.WithLogger(logger),
		zval.WithMetrics(zval.NewPrometheusMetrics(registry)),
		zval.WithStringPrecision(precision),
		zval.WithLocale(tag),
		zval.WithDiagnosticHandler(func(d zval.Diagnostic) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", d.Message)
		}),
	)
}

func printStats(w io.Writer) {
	families, err := registry.Gather()
	if err != nil {
		return
	}

	lines := make([]string, 0, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, l := range m.GetLabel() {
				name += fmt.Sprintf("{%s=%q}", l.GetName(), l.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
