package main

import (
	"fmt"

	"github.com/dunglas/zval"
	"github.com/spf13/cobra"
)

func newKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key <value>...",
		Short: "Shows the array key each value is stored under",
		Long: `
Canonicalizes each value the way $a[$value] would: "8" becomes the integer 8
while "08" stays a string, booleans become 0 or 1 and floats are truncated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmdKey,
	}

	cmd.Flags().BoolP("strings", "s", false, "Read values as strings")

	return cmd
}

func cmdKey(cmd *cobra.Command, args []string) error {
	asString, _ := cmd.Flags().GetBool("strings")

	for _, arg := range args {
		v, err := parseOperand(arg, asString)
		if err != nil {
			return err
		}

		k, err := zval.KeyOf(v)
		if err != nil {
			return err
		}

		kind := "int"
		if k.IsString() {
			kind = "string"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%#v => %s(%#v)\n", v, kind, k)
	}

	return nil
}
