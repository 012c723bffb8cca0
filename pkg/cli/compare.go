/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/semcmp/pkg/version"
)

// Predicates is the ordering of A relative to B and the five predicates.
type Predicates struct {
	Ordering         version.Ordering `json:"ordering" yaml:"ordering"`
	IsEqual          bool             `json:"isEqual" yaml:"isEqual"`
	IsGreater        bool             `json:"isGreater" yaml:"isGreater"`
	IsGreaterOrEqual bool             `json:"isGreaterOrEqual" yaml:"isGreaterOrEqual"`
	IsLesser         bool             `json:"isLesser" yaml:"isLesser"`
	IsLesserOrEqual  bool             `json:"isLesserOrEqual" yaml:"isLesserOrEqual"`
}

func newPredicates(o version.Ordering) Predicates {
	return Predicates{
		Ordering:         o,
		IsEqual:          o.IsEqual(),
		IsGreater:        o.IsGreater(),
		IsGreaterOrEqual: o.IsGreaterOrEqual(),
		IsLesser:         o.IsLesser(),
		IsLesserOrEqual:  o.IsLesserOrEqual(),
	}
}

// CompareResult is the output of the compare command.
type CompareResult struct {
	A          string     `json:"a" yaml:"a"`
	B          string     `json:"b" yaml:"b"`
	Predicates Predicates `json:"predicates" yaml:"predicates"`
}

func compareCmd() *cli.Command {
	return &cli.Command{
		Name:                  "compare",
		EnableShellCompletion: true,
		Usage:                 "Compare two versions by precedence",
		ArgsUsage:             "[A B]",
		Description: `Compare version A against version B and report the three-way ordering
(LESS, EQUAL or GREATER) together with the five predicates.

Operands are either two full version strings:

  semcmp compare 1.0.0-alpha 1.0.0

or already decomposed cores with optional prereleases:

  semcmp compare --a-core 1,0,0 --a-pre alpha --b-core 1,0,0

Build metadata is accepted in version strings and ignored.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "a-core",
				Usage: "Core of operand A as Major,Minor,Patch (or Major.Minor.Patch)",
			},
			&cli.StringFlag{
				Name:  "a-pre",
				Usage: "Dot-separated prerelease of operand A",
			},
			&cli.StringFlag{
				Name:  "b-core",
				Usage: "Core of operand B as Major,Minor,Patch (or Major.Minor.Patch)",
			},
			&cli.StringFlag{
				Name:  "b-pre",
				Usage: "Dot-separated prerelease of operand B",
			},
			&cli.BoolFlag{
				Name:  "lenient",
				Usage: "Skip prerelease grammar checks on decomposed operands; malformed identifiers compare byte-wise",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			res, err := compareFromCmd(cmd)
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, res)
		},
	}
}

func compareFromCmd(cmd *cli.Command) (*CompareResult, error) {
	decomposed := cmd.IsSet("a-core") || cmd.IsSet("b-core")

	switch {
	case cmd.Args().Len() == 2 && !decomposed:
		a, err := version.ParseVersion(cmd.Args().Get(0))
		if err != nil {
			return nil, fmt.Errorf("invalid version A %q: %w", cmd.Args().Get(0), err)
		}
		b, err := version.ParseVersion(cmd.Args().Get(1))
		if err != nil {
			return nil, fmt.Errorf("invalid version B %q: %w", cmd.Args().Get(1), err)
		}
		return &CompareResult{
			A:          cmd.Args().Get(0),
			B:          cmd.Args().Get(1),
			Predicates: newPredicates(version.Compare(a, b)),
		}, nil

	case decomposed && cmd.Args().Len() == 0:
		lenient := cmd.Bool("lenient")
		coreA, preA, err := decomposedOperand(cmd.String("a-core"), cmd.String("a-pre"), lenient)
		if err != nil {
			return nil, fmt.Errorf("invalid operand A: %w", err)
		}
		coreB, preB, err := decomposedOperand(cmd.String("b-core"), cmd.String("b-pre"), lenient)
		if err != nil {
			return nil, fmt.Errorf("invalid operand B: %w", err)
		}
		return &CompareResult{
			A:          version.NewVersion(coreA, preA).String(),
			B:          version.NewVersion(coreB, preB).String(),
			Predicates: newPredicates(version.CompareParts(coreA, preA, coreB, preB)),
		}, nil

	default:
		return nil, fmt.Errorf("expected two version arguments or --a-core and --b-core, got %d arguments", cmd.Args().Len())
	}
}

func decomposedOperand(core, pre string, lenient bool) (version.Core, string, error) {
	c, err := version.ParseCoreString(core)
	if err != nil {
		return version.Core{}, "", err
	}
	if !lenient {
		if _, err := version.ParsePrerelease(pre); err != nil {
			return version.Core{}, "", err
		}
	}
	return c, pre, nil
}
