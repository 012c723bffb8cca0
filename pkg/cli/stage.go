/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/semcmp/pkg/session"
	"github.com/NVIDIA/semcmp/pkg/version"
)

// StagedOperand is one staged slot as read back through the session.
type StagedOperand struct {
	Version     string   `json:"version" yaml:"version"`
	Count       int      `json:"count" yaml:"count"`
	Identifiers []string `json:"identifiers" yaml:"identifiers"`
}

// StageResult is the output of the stage command.
type StageResult struct {
	State      session.State `json:"state" yaml:"state"`
	A          StagedOperand `json:"a" yaml:"a"`
	B          StagedOperand `json:"b" yaml:"b"`
	Predicates Predicates    `json:"predicates" yaml:"predicates"`
}

func stageCmd() *cli.Command {
	return &cli.Command{
		Name:                  "stage",
		EnableShellCompletion: true,
		Usage:                 "Run the staged comparison protocol",
		Description: `Stage version A and version B into a comparison session, read every
prerelease identifier back by index, and query the five predicates.

  semcmp stage --a 1.0.0-alpha.1 --b 1.0.0-alpha.beta`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "a",
				Required: true,
				Usage:    "Version staged into slot A",
			},
			&cli.StringFlag{
				Name:     "b",
				Required: true,
				Usage:    "Version staged into slot B",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			a, err := version.ParseVersion(cmd.String("a"))
			if err != nil {
				return fmt.Errorf("invalid version A %q: %w", cmd.String("a"), err)
			}
			b, err := version.ParseVersion(cmd.String("b"))
			if err != nil {
				return fmt.Errorf("invalid version B %q: %w", cmd.String("b"), err)
			}

			res, err := runStaged(a, b)
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, res)
		},
	}
}

// runStaged stages a and b into a fresh session and reads the result back
// through the session's query surface only.
func runStaged(a, b version.Version) (*StageResult, error) {
	s := session.New()
	s.SetA(a.Core, a.Prerelease.String())
	s.SetB(b.Core, b.Prerelease.String())

	o, err := s.Compare()
	if err != nil {
		return nil, fmt.Errorf("cannot query staged versions: %w", err)
	}

	res := &StageResult{
		State:      s.State(),
		Predicates: newPredicates(o),
	}

	for _, slot := range []session.Slot{session.SlotA, session.SlotB} {
		op, err := readBack(s, slot)
		if err != nil {
			return nil, err
		}
		if slot == session.SlotA {
			res.A = op
		} else {
			res.B = op
		}
	}

	slog.Debug("staged comparison", "a", res.A.Version, "b", res.B.Version, "ordering", o)
	return res, nil
}

func readBack(s *session.Session, slot session.Slot) (StagedOperand, error) {
	v, ok := s.Staged(slot)
	if !ok {
		return StagedOperand{}, fmt.Errorf("slot %s: %w", slot, session.ErrNotStaged)
	}

	n := s.NumIdentifiers(slot)
	ids := make([]string, n)
	for i := range n {
		id, err := s.Identifier(slot, i)
		if err != nil {
			return StagedOperand{}, fmt.Errorf("slot %s: %w", slot, err)
		}
		ids[i] = id
	}

	return StagedOperand{
		Version:     v.String(),
		Count:       n,
		Identifiers: ids,
	}, nil
}
