package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/polycover/polycover/pkg/cache"
	"github.com/polycover/polycover/pkg/instance"
	"github.com/polycover/polycover/pkg/report"
	"github.com/polycover/polycover/pkg/runner"
)

func newCoverCmd() *cobra.Command {
	var (
		inputPath      string
		costsSpec      string
		algorithmSpec  string
		postprocessors []string
		outputPath     string
		verify         bool
		timeoutSeconds float64
		refresh        bool
		noCache        bool
	)

	cmd := &cobra.Command{
		Use:   "cover",
		Short: "Compute a rectangle cover for a WKT instance",
		Long: `Cover runs one algorithm and an optional postprocessor chain on every
polygon of a WKT multi-polygon and writes the result as JSON or CSV.

The algorithm may carry postprocessors inline: "greedy+prune+trim" is
equivalent to --algorithm greedy --postprocessors prune,trim.

Exit codes: bit 0 is set when any polygon's cover is invalid, bit 1
when any polygon timed out.`,
		Example: `  polycover cover -i floor.wkt -c 5,1 -a greedy -p prune,trim -o result.json
  polycover cover -i floor.wkt -c 0,1 -a partition -o results.csv
  polycover cover -i floor.wkt -c 5,1 -a exact -t 60 -o result.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("costs") && (cfg.CreationCost != 0 || cfg.AreaCost != 0) {
				costsSpec = fmt.Sprintf("%d,%d", cfg.CreationCost, cfg.AreaCost)
			}
			if !cmd.Flags().Changed("algorithm") && cfg.Algorithm != "" {
				algorithmSpec = cfg.Algorithm
			}
			if !cmd.Flags().Changed("postprocessors") && len(cfg.Postprocessors) > 0 {
				postprocessors = cfg.Postprocessors
			}
			if !cmd.Flags().Changed("verify") {
				verify = cfg.Verify
			}
			if !cmd.Flags().Changed("timeout") && cfg.TimeoutSeconds > 0 {
				timeoutSeconds = cfg.TimeoutSeconds
			}

			logger := loggerFromContext(cmd.Context())
			costs, err := parseCosts(costsSpec)
			if err != nil {
				return err
			}
			timeout := time.Duration(timeoutSeconds * float64(time.Second))
			provider, chainName, err := buildProvider(algorithmSpec, postprocessors, timeout, logger)
			if err != nil {
				return err
			}

			inst, err := instance.Load(inputPath, costs)
			if err != nil {
				return err
			}
			logger.Info("Loaded instance",
				"name", inst.Name, "polygons", len(inst.MultiPolygon), "chain", chainName)

			var store cache.Cache = cache.NewNullCache()
			if !noCache {
				if fileCache, err := cache.NewFileCache(cfg.cacheDir()); err == nil {
					store = fileCache
				} else {
					logger.Warn("Result cache unavailable", "err", err)
				}
			}
			rawWKT, _ := os.ReadFile(inputPath)
			key := cache.Key(string(rawWKT), costs.Creation, costs.Area, chainName)

			if !refresh {
				if data, ok, err := store.Get(cmd.Context(), key); err == nil && ok {
					var doc report.Document
					if err := json.Unmarshal(data, &doc); err == nil {
						logger.Info("Result cache hit", "key", key[:16])
						if err := report.Write(outputPath, inst, report.Rows(doc), doc); err != nil {
							return err
						}
						fmt.Fprintln(cmd.OutOrStdout(), report.Summary(doc))
						return nil
					}
				}
			}

			spin := newSpinner(fmt.Sprintf("Covering %s with %s", inst.Name, chainName))
			spin.Start()
			track := newProgress(logger)
			start := time.Now()
			results, err := runner.New(logger, verify).Run(provider, inst)
			end := time.Now()
			spin.Stop()
			if err != nil {
				return err
			}
			track.done(fmt.Sprintf("Covered %d polygon(s)", len(results)-1))

			doc := report.Build(inst, results, chainName, start, end)
			if err := report.Write(outputPath, inst, results, doc); err != nil {
				return err
			}
			logger.Info("Result written", "path", outputPath)

			if data, err := json.Marshal(doc); err == nil {
				if err := store.Set(cmd.Context(), key, data, 0); err != nil {
					logger.Debug("Result cache store failed", "err", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderResults(results, chainName))

			code := exitCode(results)
			if code != 0 {
				cmd.SilenceErrors = true
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the instance's WKT file")
	cmd.Flags().StringVarP(&costsSpec, "costs", "c", "0,1", "\"creation,area\" cost pair")
	cmd.Flags().StringVarP(&algorithmSpec, "algorithm", "a", "greedy",
		"algorithm to run: greedy, strip, partition, exact, exact-pixel; postprocessors may be chained with '+'")
	cmd.Flags().StringSliceVarP(&postprocessors, "postprocessors", "p", nil,
		"postprocessors to run in order: prune, trim, join, join-full, bbox-split, partition-split")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "result file (.json or .csv, CSV appends)")
	cmd.Flags().BoolVar(&verify, "verify", true, "verify that the result is an exact cover")
	cmd.Flags().Float64VarP(&timeoutSeconds, "timeout", "t", 0, "per-polygon timeout in seconds (exact backend only)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore the result cache and recompute")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache entirely")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// exitCode folds the per-polygon outcomes into the process exit code.
func exitCode(results []runner.Result) int {
	code := 0
	for _, r := range results[1:] {
		switch r.Validity {
		case runner.Invalid:
			code |= 1
		case runner.Timeout:
			code |= 2
		}
	}
	return code
}
