package main

import (
	"fmt"

	"github.com/dunglas/zval"
	"github.com/spf13/cobra"
)

var comparatorKinds = map[string]zval.ComparatorKind{
	"regular": zval.Regular,
	"strict":  zval.Strict,
	"numeric": zval.Numeric,
	"string":  zval.StringOrdinal,
	"natural": zval.Natural,
	"key":     zval.ArrayKey,
	"locale":  zval.LocaleString,
}

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <left> <right>",
		Short: "Compares two values",
		Long: `
Prints the result of left <=> right, and whether left == right and
left === right hold.`,
		Args: cobra.ExactArgs(2),
		RunE: cmdCompare,
	}

	cmd.Flags().StringP("mode", "m", "regular", "Comparison mode: regular, strict, numeric, string, natural, key or locale")
	cmd.Flags().BoolP("fold-case", "i", false, "Ignore ASCII case in string and natural modes")
	cmd.Flags().BoolP("strings", "s", false, "Read operands as strings")

	return cmd
}

func cmdCompare(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	foldCase, _ := cmd.Flags().GetBool("fold-case")
	asString, _ := cmd.Flags().GetBool("strings")

	kind, ok := comparatorKinds[mode]
	if !ok {
		return fmt.Errorf("unknown comparison mode %q", mode)
	}

	left, err := parseOperand(args[0], asString)
	if err != nil {
		return err
	}
	right, err := parseOperand(args[1], asString)
	if err != nil {
		return err
	}

	c, err := zval.ComparatorOf(kind, foldCase).Compare(left, right)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%#v <=> %#v = %d\n", left, right, c)
	fmt.Fprintf(out, "==  %t\n", zval.LooseEquals(left, right))
	fmt.Fprintf(out, "=== %t\n", zval.StrictEquals(left, right))

	return nil
}
