// Command precalcgen generates lookup-table implementations of small pure
// integer functions from a declaration file. It is meant to run from
// go:generate:
//
//	//go:generate go run github.com/on-the-ground/precalc/cmd/precalcgen generate -f precalc.yaml
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/on-the-ground/precalc/config"
	"github.com/on-the-ground/precalc/internal/log"
	"github.com/on-the-ground/precalc/internal/runner"
)

func main() {
	opts := runner.Options{}
	var (
		verbose      bool
		maxTableSize uint64
		defaultMode  string
	)

	rootCmd := &cobra.Command{
		Use:           "precalcgen",
		Short:         "Generate lookup tables for pure functions over bounded integer domains",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetLogger(log.NewConsole(verbose))
			if opts.Decl == "" {
				return errors.New("a declaration file is required (-f)")
			}
			opts.Settings = map[string]string{}
			if cmd.Flags().Changed("max-table-size") {
				opts.Settings[config.ConfigPrecalcMaxTableSize] = strconv.FormatUint(maxTableSize, 10)
			}
			if cmd.Flags().Changed("default-mode") {
				opts.Settings[config.ConfigPrecalcDefaultMode] = defaultMode
			}
			return nil
		},
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the generated Go file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runner.Generate(opts)
			return err
		},
	}
	generateCmd.Flags().StringVarP(&opts.Out, "out", "o", "", "The file to write; defaults to the declaration's output.")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Fail if the generated Go file is missing, edited or out of date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runner.Check(opts); err != nil {
				return err
			}
			log.Logger().Info("generated file is current", zap.String("decl", opts.Decl))
			return nil
		},
	}
	checkCmd.Flags().StringVarP(&opts.Out, "out", "o", "", "The generated file to check; defaults to the declaration's output.")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.Decl, "file", "f", "", "The declaration file.")
	flags.StringVar(&opts.Dir, "dir", "", "The package directory whose constants bounds may name; defaults to the declaration's directory.")
	flags.Uint64Var(&maxTableSize, "max-table-size", 0, "Override "+config.ConfigPrecalcMaxTableSize+".")
	flags.StringVar(&defaultMode, "default-mode", "", "Override "+config.ConfigPrecalcDefaultMode+" (panic, option or fallback).")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log every build step.")

	rootCmd.AddCommand(generateCmd, checkCmd)
	if err := rootCmd.Execute(); err != nil {
		exitWithError("%v", err)
	}
}

func exitWithError(msg string, args ...any) {
	msg = fmt.Sprintf(msg, args...)
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
	_ = log.Logger().Sync()
	os.Exit(1)
}
