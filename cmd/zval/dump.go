package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dunglas/zval"
	"github.com/dunglas/zval/internal/yamlarray"
	"github.com/spf13/cobra"
)

func newDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [file.yaml]",
		Short: "Dumps a YAML document as a PHP value",
		Long: `
Loads a YAML document (from a file or stdin) into a PHP array, keeping the
mapping order, and prints it with print_r, var_dump or var_export.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmdDump,
	}

	cmd.Flags().StringP("format", "f", "var_dump", "Output format: print_r, var_dump, var_export or yaml")
	cmd.Flags().StringP("sort", "", "", "Sort the top-level array before dumping: values, keys or natural")

	return cmd
}

func cmdDump(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	sortBy, _ := cmd.Flags().GetString("sort")

	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	v, err := yamlarray.Decode(data)
	if err != nil {
		return err
	}

	if a := v.Array(); a != nil && sortBy != "" {
		switch sortBy {
		case "values":
			err = a.Sort(zval.RegularComparator(), true)
		case "keys":
			err = a.SortKeys(zval.KeyComparator())
		case "natural":
			err = a.Sort(zval.NaturalComparator(false), true)
		default:
			err = fmt.Errorf("unknown sort order %q", sortBy)
		}
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "print_r":
		err = zval.PrintR(out, v)
	case "var_dump":
		err = zval.VarDump(out, v)
	case "var_export":
		if err = zval.VarExport(out, v); err == nil {
			_, err = fmt.Fprintln(out)
		}
	case "yaml":
		var b []byte
		if b, err = yamlarray.Encode(v); err == nil {
			_, err = out.Write(b)
		}
	default:
		err = fmt.Errorf("unknown format %q", format)
	}

	return err
}
