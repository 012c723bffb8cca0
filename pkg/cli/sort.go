/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/semcmp/pkg/version"
)

// SortResult lists versions in precedence order.
type SortResult struct {
	Versions []string `json:"versions" yaml:"versions"`
}

// Columns implements serializer.Tabular.
func (r SortResult) Columns() []string {
	return []string{"#", "VERSION"}
}

// Rows implements serializer.Tabular.
func (r SortResult) Rows() [][]string {
	rows := make([][]string, len(r.Versions))
	for i, v := range r.Versions {
		rows[i] = []string{strconv.Itoa(i), v}
	}
	return rows
}

func sortCmd() *cli.Command {
	return &cli.Command{
		Name:                  "sort",
		EnableShellCompletion: true,
		Usage:                 "Sort versions by precedence",
		ArgsUsage:             "VERSION...",
		Description: `Sort versions ascending by SemVer 2.0.0 precedence. Versions with equal
precedence (for example differing only in build metadata) keep their input
order. Output preserves the versions as given.

  semcmp sort 1.0.0 1.0.0-rc.1 1.0.0-alpha 0.9.0`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "reverse",
				Aliases: []string{"r"},
				Usage:   "Sort descending",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("at least one version is required")
			}

			sorted, err := sortVersions(cmd.Args().Slice(), cmd.Bool("reverse"))
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, SortResult{Versions: sorted})
		},
	}
}

func sortVersions(in []string, reverse bool) ([]string, error) {
	type item struct {
		raw string
		v   version.Version
	}

	items := make([]item, 0, len(in))
	for _, s := range in {
		v, err := version.ParseVersion(s)
		if err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", s, err)
		}
		items = append(items, item{raw: s, v: v})
	}

	slices.SortStableFunc(items, func(a, b item) int {
		o := version.Compare(a.v, b.v)
		if reverse {
			o = o.Reverse()
		}
		return int(o)
	})

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.raw
	}
	return out, nil
}
