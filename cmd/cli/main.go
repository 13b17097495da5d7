package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"gofit/adapters/excel"
	"gofit/adapters/jsondata"
	"gofit/internal/config"
	"gofit/internal/errors"
	"gofit/internal/gof"
	"gofit/internal/logger"
	"gofit/internal/nulldist"
	"gofit/internal/simulate"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	log *logging.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for bad input or configuration, 1 for anything else.
func exitCode(err error) int {
	for _, code := range []string{errors.CodeInvalidInput, errors.CodeInvalidSamples, errors.CodeConfigInvalid} {
		if errors.HasCode(err, code) {
			return 2
		}
	}
	return 1
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gofit",
		Short: "EDF goodness-of-fit tests with finite-sample p-values",
		Long: `Kolmogorov-Smirnov, Cramér-von Mises and Anderson-Darling tests against
fully specified continuous distributions, with accurate null distributions for
every sample count.

Defaults are read from the environment (and a .env file if present):
- GOFIT_LOG_LEVEL (default: INFO)
- GOFIT_STATISTIC (default: ks)
- GOFIT_ASSUME_SORTED (default: false)
- GOFIT_SIM_PRECISION, GOFIT_SIM_ROUNDS, GOFIT_SIM_WORKERS, GOFIT_SIM_SEED`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env file is fine.
			_ = godotenv.Load()

			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			log = logger.NewLogger(cfg.Log.Level, "CLI")
			return nil
		},
	}

	rootCmd.AddCommand(
		newTestCmd(),
		newNullCmd("cdf", "Null distribution CDF of a statistic", nulldist.CDFEach),
		newNullCmd("sf", "Null distribution survival function of a statistic", nulldist.SurvivalEach),
		newSimulateCmd(),
	)
	return rootCmd
}

type dataSource struct {
	file     string
	column   string
	sheet    string
	jsonFile string
	jsonPath string
}

// load reads samples from exactly one of a spreadsheet, a JSON file or args.
func (s dataSource) load(args []string) ([]float64, error) {
	switch {
	case s.file != "" && s.jsonFile != "":
		return nil, errors.InvalidInput("use only one of --file and --json")
	case (s.file != "" || s.jsonFile != "") && len(args) > 0:
		return nil, errors.InvalidInput("data values given both as arguments and as a file")
	case s.file != "":
		return excel.NewDataReader(s.file, log).WithSheet(s.sheet).ReadColumn(s.column)
	case s.jsonFile != "":
		return jsondata.ReadFile(s.jsonFile, s.jsonPath)
	}
	return gof.ParseData(args)
}

// testOutput is the JSON document printed by the test command.
type testOutput struct {
	Statistic    string    `json:"statistic"`
	Distribution string    `json:"distribution"`
	Params       []float64 `json:"params"`
	Samples      int       `json:"samples"`
	Value        number    `json:"value"`
	PValue       number    `json:"pvalue"`
}

func newTestCmd() *cobra.Command {
	var source dataSource
	var statistic string
	var distribution string
	var params []float64
	var assumeSorted bool

	cmd := &cobra.Command{
		Use:   "test [values...]",
		Short: "Test data against a hypothesized distribution",
		Long: `Run a goodness-of-fit test of the data against a named distribution.

Data comes from the arguments, a spreadsheet column (--file, --column, --sheet)
or a JSON array (--json, --path). Distribution parameters are positional:
shape parameters first, then loc and scale.

Example: gofit test --statistic ad --dist norm --params 10,2 9.1 11.4 10.2 7.9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("statistic") {
				statistic = cfg.Test.Statistic
			}
			if !cmd.Flags().Changed("assume-sorted") {
				assumeSorted = cfg.Test.AssumeSorted
			}

			test, err := gof.Preset(strings.ToLower(statistic))
			if err != nil {
				return err
			}
			test.AssumeSorted = assumeSorted

			dist, err := gof.Lookup(distribution, params...)
			if err != nil {
				return err
			}
			data, err := source.load(args)
			if err != nil {
				return err
			}

			log.Debugf("%s test of %d values against %s%v", test.Null.Name(), len(data), distribution, params)
			result, err := test.Run(data, dist)
			if err != nil {
				return err
			}
			log.Infof("%s: %s", test.Null.Name(), result)

			return writeJSON(cmd.OutOrStdout(), testOutput{
				Statistic:    test.Null.Name(),
				Distribution: distribution,
				Params:       params,
				Samples:      len(data),
				Value:        number(result.Statistic),
				PValue:       number(result.PValue),
			})
		},
	}

	cmd.Flags().StringVar(&statistic, "statistic", "ks", "Test statistic: ks, cvm or ad (default from GOFIT_STATISTIC)")
	cmd.Flags().StringVar(&distribution, "dist", "norm", "Hypothesized distribution: "+strings.Join(gof.Distributions(), ", "))
	cmd.Flags().Float64SliceVar(&params, "params", nil, "Distribution parameters: shapes, then loc and scale")
	cmd.Flags().BoolVar(&assumeSorted, "assume-sorted", false, "Data is already in ascending order (default from GOFIT_ASSUME_SORTED)")
	cmd.Flags().StringVar(&source.file, "file", "", "Read data from an .xlsx or .csv file")
	cmd.Flags().StringVar(&source.column, "column", "", "Column header to read (default: first column)")
	cmd.Flags().StringVar(&source.sheet, "sheet", excel.DefaultSheet, "Workbook sheet to read")
	cmd.Flags().StringVar(&source.jsonFile, "json", "", "Read data from a JSON file")
	cmd.Flags().StringVar(&source.jsonPath, "path", "", "gjson path of the sample array (default: the whole document)")

	return cmd
}

type evalFunc func(nulldist.Family, []float64, []int) ([]float64, error)

func newNullCmd(use, short string, eval evalFunc) *cobra.Command {
	var statistic string
	var samples []int

	cmd := &cobra.Command{
		Use:   use + " [statistics...]",
		Short: short,
		Long: short + `, evaluated for each statistic value.

--samples takes one sample count or one per statistic value.

Example: gofit ` + use + ` --statistic ks --samples 10 0.1 0.2 0.3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("statistic") {
				statistic = cfg.Test.Statistic
			}
			family, err := nulldist.Lookup(strings.ToLower(statistic))
			if err != nil {
				return err
			}

			values := make([]float64, len(args))
			for i, arg := range args {
				// Statistic values may be infinite (AD at a pole).
				v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
				if err != nil || math.IsNaN(v) {
					return errors.InvalidInput(fmt.Sprintf("%q is not a statistic value", arg))
				}
				values[i] = v
			}

			probabilities, err := eval(family, values, samples)
			if err != nil {
				return err
			}
			out := make([]number, len(probabilities))
			for i, p := range probabilities {
				out[i] = number(p)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&statistic, "statistic", "ks", "Statistic: ks, cvm or ad (default from GOFIT_STATISTIC)")
	cmd.Flags().IntSliceVar(&samples, "samples", nil, "Sample count(s)")
	_ = cmd.MarkFlagRequired("samples")

	return cmd
}

func newSimulateCmd() *cobra.Command {
	var statistic string
	var precision, rounds, workers int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "simulate [samples]",
		Short: "Simulate critical values of a statistic",
		Long: `Estimate the null distribution of a statistic by Monte Carlo and print
precision-1 evenly spaced critical values.

Example: gofit simulate 20 --statistic cvm --precision 100 --rounds 100000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.InvalidInput(fmt.Sprintf("invalid sample count %q", args[0]))
			}
			if !cmd.Flags().Changed("statistic") {
				statistic = cfg.Test.Statistic
			}
			test, err := gof.Preset(strings.ToLower(statistic))
			if err != nil {
				return err
			}

			simCfg := simulate.ConfigFrom(cfg.Simulation, samples)
			if cmd.Flags().Changed("precision") {
				simCfg.Precision = precision
			}
			if cmd.Flags().Changed("rounds") {
				simCfg.Rounds = rounds
			}
			if cmd.Flags().Changed("workers") {
				simCfg.Workers = workers
			}
			if cmd.Flags().Changed("seed") {
				simCfg.Seed = seed
			}

			table, err := simulate.NewSimulator(cfg.Log.Level).Run(cmd.Context(), test.Statistic, simCfg)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), table)
		},
	}

	cmd.Flags().StringVar(&statistic, "statistic", "ks", "Statistic: ks, cvm or ad (default from GOFIT_STATISTIC)")
	cmd.Flags().IntVar(&precision, "precision", 100, "Table resolution (default from GOFIT_SIM_PRECISION)")
	cmd.Flags().IntVar(&rounds, "rounds", 100000, "Simulated data sets (default from GOFIT_SIM_ROUNDS)")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent workers (default from GOFIT_SIM_WORKERS)")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed (default from GOFIT_SIM_SEED)")

	return cmd
}

// number encodes non-finite values as strings, which encoding/json rejects.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return json.Marshal(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return json.Marshal(f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
