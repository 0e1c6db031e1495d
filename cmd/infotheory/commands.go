package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vitalvas/infotheory/server"
	"github.com/vitalvas/infotheory/xcmd"
	"github.com/vitalvas/infotheory/xentropy"
	"github.com/vitalvas/infotheory/xlogger"
)

// calcFlags are shared by every calculation subcommand.
type calcFlags struct {
	base      float64
	mode      string
	precision int
}

func (f *calcFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.base, "base", xentropy.DefaultBase, "logarithm base")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "PB", "dataset mode: PB (probabilities) or DS (samples)")
	cmd.Flags().IntVarP(&f.precision, "precision", "p", -1, "decimal places to print, -1 for shortest exact form")
}

func (f *calcFlags) options() ([]xentropy.Option, error) {
	mode, err := xentropy.ParseMode(f.mode)
	if err != nil {
		return nil, err
	}

	return []xentropy.Option{xentropy.WithBase(f.base), xentropy.WithMode(mode)}, nil
}

func (f *calcFlags) print(w io.Writer, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("result %v is not finite, check --base", v)
	}

	_, err := fmt.Fprintln(w, strconv.FormatFloat(v, 'f', f.precision, 64))
	return err
}

func entropyCmd() *cobra.Command {
	var (
		flags calcFlags
		file  string
	)

	cmd := &cobra.Command{
		Use:   "entropy [values...]",
		Short: "Compute the Shannon entropy of a dataset",
		Long: `Compute the Shannon entropy of a dataset.

Examples:
  # Probability distribution in bits
  infotheory entropy --base 2 0.2 0.5 0.3

  # Samples read from a file
  infotheory entropy --mode DS --file samples.txt

  # Samples from standard input
  seq 1 8 | infotheory entropy --mode DS --base 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			data, err := readDataset(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			return flags.print(cmd.OutOrStdout(), xentropy.Entropy(data, opts...))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the dataset from a file (- for stdin)")

	return cmd
}

// pairCmd builds a subcommand that evaluates calc over two datasets given by --a and --b.
func pairCmd(use, short, long string, calc func(a, b []float64, opts ...xentropy.Option) (float64, error)) *cobra.Command {
	var (
		flags calcFlags
		a, b  string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			first, err := parseValues(a)
			if err != nil {
				return fmt.Errorf("--a: %w", err)
			}

			second, err := parseValues(b)
			if err != nil {
				return fmt.Errorf("--b: %w", err)
			}

			v, err := calc(first, second, opts...)
			if err != nil {
				return err
			}

			return flags.print(cmd.OutOrStdout(), v)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&a, "a", "", "first dataset, comma or space separated")
	cmd.Flags().StringVar(&b, "b", "", "second dataset, comma or space separated")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")

	return cmd
}

func jointCmd() *cobra.Command {
	return pairCmd("joint", "Compute the joint entropy H(A,B) of two datasets",
		`Compute the joint entropy H(A,B) of two datasets.

In DS mode the datasets are paired sample by sample and must have equal
length. In PB mode they are marginal distributions of independent variables.

Examples:
  infotheory joint --mode DS --base 2 --a 0,0,1,1 --b 0,1,0,1`,
		xentropy.JointEntropy)
}

func mutualCmd() *cobra.Command {
	return pairCmd("mutual", "Compute the mutual information I(A;B) of two datasets",
		`Compute the mutual information I(A;B) = H(A) + H(B) - H(A,B).

Examples:
  infotheory mutual --mode DS --base 2 --a 1,1,2,2 --b 5,5,6,6`,
		xentropy.MutualInformation)
}

func serveCmd() *cobra.Command {
	var src configSources

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Long: `Serve the calculators over HTTP.

Configuration is read from every yaml/json file in the --config-dir
directories (sorted by name), then from the --config files in order, then
from INFOTHEORY_* environment variables, for example
INFOTHEORY_SERVER_ADDRESS=:8080 or INFOTHEORY_SERVER_ENTROPY_BASE=2.
Variables may also come from --env-file files; the process environment wins
over them. String values may reference variables as ${env:NAME}.

Examples:
  infotheory serve --config /etc/infotheory/config.yaml

  infotheory serve --config-dir /etc/infotheory/conf.d --env-file /etc/infotheory/infotheory.env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(src)
			if err != nil {
				return err
			}

			return runServer(cmd.Context(), conf)
		},
	}

	cmd.Flags().StringArrayVarP(&src.files, "config", "c", nil, "configuration file (yaml or json), repeatable")
	cmd.Flags().StringArrayVar(&src.dirs, "config-dir", nil, "directory of configuration files, repeatable")
	cmd.Flags().StringArrayVar(&src.envFiles, "env-file", []string{".env"}, "KEY=VALUE file with INFOTHEORY_* variables, repeatable; missing files are skipped")

	return cmd
}

func runServer(ctx context.Context, conf Config) error {
	logger := xlogger.New(conf.Logger)
	srv := server.New(conf.Server, logger)

	err := xcmd.Run(ctx, srv.Run, func(ctx context.Context) error {
		return xcmd.WaitInterrupted(ctx)
	})

	var sigErr *xcmd.SignalError
	if errors.As(err, &sigErr) {
		logger.Info("shutting down", "signal", sigErr.Signal.String())
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}

	return err
}

// openInput returns the reader for a --file value; "-" means stdin.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	return f, nil
}
