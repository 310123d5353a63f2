// Package main provides the CLI entry point for saipos-normalize.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/saipos-normalize-go/pkg/normalize"
	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/config"
	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/logging"
)

const (
	exitOK      = 0
	exitUsage   = 1
	exitFailure = 2
)

// errUsage is returned when no input file is given.
var errUsage = errors.New("missing input file")

// errFlags wraps flag parsing failures.
var errFlags = errors.New("invalid flags")

// notFoundError reports an input path that is not an existing file.
type notFoundError struct {
	path string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%v: %s", normalize.ErrFileNotFound, e.path)
}

func (e *notFoundError) Unwrap() error {
	return normalize.ErrFileNotFound
}

type flags struct {
	configFile  string
	sheet       string
	skipRows    int
	outputDir   string
	writeHeader bool
	logLevel    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code. User-facing
// messages go to stdout, logs to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	var notFound *notFoundError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stdout, "Uso: %s <arquivo.xlsx>\n", rootCmd.Name())
		return exitUsage
	case errors.As(err, &notFound):
		fmt.Fprintf(stdout, "Arquivo não encontrado: %s\n", notFound.path)
		return exitUsage
	case errors.Is(err, errFlags):
		fmt.Fprintf(stdout, "Erro: %v\n", err)
		return exitUsage
	default:
		fmt.Fprintf(stdout, "Erro: %v\n", err)
		return exitFailure
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var fl flags

	rootCmd := &cobra.Command{
		Use:   "saipos-normalize <arquivo>",
		Short: "Normalize Saipos sold-items spreadsheets",
		Long: `saipos-normalize removes the 3 report header rows of a Saipos export,
moves parenthesized annotations into a new leading column, strips the
"Diversos - " and "- " prefixes and writes <name>_tratado.<ext>.

Legacy .xls inputs are written as .xlsx (<name>_tratado.xlsx).`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errUsage
			}
			return runNormalize(cmd, args[0], fl, stdout, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errFlags, err)
	})

	rootCmd.Flags().StringVar(&fl.configFile, "config", "", "YAML configuration file")
	rootCmd.Flags().StringVar(&fl.sheet, "sheet", "", "Worksheet to process (default: first sheet)")
	rootCmd.Flags().IntVar(&fl.skipRows, "skip-rows", 3, "Number of header rows to drop")
	rootCmd.Flags().StringVarP(&fl.outputDir, "output-dir", "o", ".", "Directory for the output file")
	rootCmd.Flags().BoolVar(&fl.writeHeader, "header", false, "Write a header row with the annotation column name")
	rootCmd.Flags().StringVar(&fl.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	return rootCmd
}

func runNormalize(cmd *cobra.Command, inputPath string, fl flags, stdout, stderr io.Writer) error {
	// Validate input file exists
	if info, err := os.Stat(inputPath); err != nil || !info.Mode().IsRegular() {
		return &notFoundError{path: inputPath}
	}

	cfg, err := config.Load(fl.configFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = fl.logLevel
	}
	logger := logging.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)

	opts := cfg.Options()
	opts.Logger = logger
	if cmd.Flags().Changed("sheet") {
		opts.Sheet = fl.sheet
	}
	if cmd.Flags().Changed("skip-rows") {
		if fl.skipRows < 0 {
			return fmt.Errorf("invalid --skip-rows: %d", fl.skipRows)
		}
		opts.HeaderRows = fl.skipRows
	}
	if cmd.Flags().Changed("output-dir") {
		opts.OutputDir = fl.outputDir
	}
	if cmd.Flags().Changed("header") {
		opts.WriteHeader = fl.writeHeader
	}

	report, err := normalize.Normalize(inputPath, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Arquivo gerado: %s\n", report.OutputPath)
	return nil
}
