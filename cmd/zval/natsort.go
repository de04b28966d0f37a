package main

import (
	"fmt"

	"github.com/dunglas/zval"
	"github.com/spf13/cobra"
)

func newNatsortCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "natsort <string>...",
		Short: "Sorts strings in natural order",
		Args:  cobra.MinimumNArgs(1),
		RunE:  cmdNatsort,
	}

	cmd.Flags().BoolP("fold-case", "i", false, "Ignore ASCII case, like natcasesort")

	return cmd
}

func cmdNatsort(cmd *cobra.Command, args []string) error {
	foldCase, _ := cmd.Flags().GetBool("fold-case")

	a := zval.NewArraySized(len(args))
	for _, arg := range args {
		if _, err := a.Append(zval.String(arg)); err != nil {
			return err
		}
	}

	if err := a.Sort(zval.NaturalComparator(foldCase), true); err != nil {
		return err
	}

	for k, v := range a.Values() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s => %s\n", k, v.Str())
	}

	return nil
}
