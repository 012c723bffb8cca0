/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/semcmp/pkg/defaults"
	"github.com/NVIDIA/semcmp/pkg/header"
	"github.com/NVIDIA/semcmp/pkg/serializer"
	"github.com/NVIDIA/semcmp/pkg/version"
)

// BatchCase is one expected ordering of Left relative to Right.
type BatchCase struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Left     string `json:"left" yaml:"left"`
	Right    string `json:"right" yaml:"right"`
	Expected string `json:"expected" yaml:"expected"`
}

// BatchInput is the document read by the batch command. The header is
// optional; when present it must name KindComparisonCases.
type BatchInput struct {
	header.Header `json:",inline" yaml:",inline"`

	Cases []BatchCase `json:"cases" yaml:"cases"`
}

// BatchResult is the outcome of a single case.
type BatchResult struct {
	Index    int    `json:"index" yaml:"index"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Left     string `json:"left" yaml:"left"`
	Right    string `json:"right" yaml:"right"`
	Expected string `json:"expected" yaml:"expected"`
	Actual   string `json:"actual,omitempty" yaml:"actual,omitempty"`
	Match    bool   `json:"match" yaml:"match"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchReport summarizes a batch run.
type BatchReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Source  string        `json:"source" yaml:"source"`
	Total   int           `json:"total" yaml:"total"`
	Passed  int           `json:"passed" yaml:"passed"`
	Failed  int           `json:"failed" yaml:"failed"`
	Errored int           `json:"errored" yaml:"errored"`
	Results []BatchResult `json:"results" yaml:"results"`
}

// Columns implements serializer.Tabular.
func (r BatchReport) Columns() []string {
	return []string{"#", "NAME", "LEFT", "RIGHT", "EXPECTED", "ACTUAL", "RESULT"}
}

// Rows implements serializer.Tabular.
func (r BatchReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		status := "PASS"
		switch {
		case res.Error != "":
			status = "ERROR: " + res.Error
		case !res.Match:
			status = "FAIL"
		}
		rows = append(rows, []string{
			strconv.Itoa(res.Index), res.Name, res.Left, res.Right, res.Expected, res.Actual, status,
		})
	}
	return rows
}

func batchCmd() *cli.Command {
	return &cli.Command{
		Name:                  "batch",
		EnableShellCompletion: true,
		Usage:                 "Evaluate a file of expected orderings",
		Description: `Read comparison cases from a YAML or JSON file (or an HTTP/HTTPS URL)
and check each actual ordering against the expected one:

  kind: ComparisonCases
  apiVersion: semcmp.nvidia.com/v1alpha1
  cases:
    - name: prerelease before release
      left: 1.0.0-alpha
      right: 1.0.0
      expected: LESS

Expected values accept LESS, EQUAL, GREATER, the symbols <, ==, > or
the integers -1, 0, 1. Cases are evaluated concurrently.

Fail the command if any case does not match (useful for CI/CD):
  semcmp batch -i cases.yaml --fail-on-mismatch`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Required: true,
				Usage:    "Path/URI to the cases file. Supports: file paths and HTTP/HTTPS URLs.",
			},
			&cli.IntFlag{
				Name:  "parallel",
				Value: defaults.BatchParallelism,
				Usage: "Maximum number of cases evaluated concurrently",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.CLITimeout,
				Usage: "Overall time limit for loading and evaluating the cases",
			},
			&cli.BoolFlag{
				Name:  "fail-on-mismatch",
				Usage: "Exit with non-zero status if any case fails or cannot be evaluated",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			input := cmd.String("input")
			slog.Info("loading cases", "uri", input)

			in, err := serializer.FromFile[BatchInput](ctx, input)
			if err != nil {
				return fmt.Errorf("failed to load cases from %q: %w", input, err)
			}
			if err := in.Expect(header.KindComparisonCases, header.APIVersion); err != nil {
				return fmt.Errorf("invalid cases file %q: %w", input, err)
			}
			if len(in.Cases) == 0 {
				return fmt.Errorf("no cases found in %q", input)
			}

			report, err := runBatch(ctx, in.Cases, cmd.Int("parallel"))
			if err != nil {
				return fmt.Errorf("batch evaluation failed: %w", err)
			}
			report.Header = *header.New(header.WithMetadata("source", input))
			report.Init(header.KindBatchReport, header.APIVersion, buildVersion)
			report.Source = input

			slog.Info("batch complete",
				"total", report.Total,
				"passed", report.Passed,
				"failed", report.Failed,
				"errored", report.Errored)

			if err := writeOutput(ctx, cmd, report); err != nil {
				return err
			}

			if cmd.Bool("fail-on-mismatch") && report.Passed != report.Total {
				return fmt.Errorf("%d of %d cases did not match", report.Total-report.Passed, report.Total)
			}
			return nil
		},
	}
}

// runBatch evaluates cases with at most parallel in flight. Per-case errors
// are recorded in the report; only cancellation aborts the run.
func runBatch(ctx context.Context, cases []BatchCase, parallel int) (*BatchReport, error) {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]BatchResult, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	start := time.Now()
	for i, c := range cases {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = evaluateCase(i, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &BatchReport{
		Total:   len(results),
		Results: results,
	}
	for _, r := range results {
		switch {
		case r.Error != "":
			report.Errored++
		case r.Match:
			report.Passed++
		default:
			report.Failed++
		}
	}

	slog.Debug("evaluated cases", "count", len(cases), "parallel", parallel, "duration", time.Since(start))
	return report, nil
}

func evaluateCase(i int, c BatchCase) BatchResult {
	res := BatchResult{
		Index:    i,
		Name:     c.Name,
		Left:     c.Left,
		Right:    c.Right,
		Expected: c.Expected,
	}

	expected, err := version.ParseOrdering(c.Expected)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	left, err := version.ParseVersion(c.Left)
	if err != nil {
		res.Error = fmt.Sprintf("left: %v", err)
		return res
	}
	right, err := version.ParseVersion(c.Right)
	if err != nil {
		res.Error = fmt.Sprintf("right: %v", err)
		return res
	}

	actual := version.Compare(left, right)
	res.Expected = expected.String()
	res.Actual = actual.String()
	res.Match = actual == expected
	return res
}
