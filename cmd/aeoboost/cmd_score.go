package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aeobooster/aeobooster/internal/scoring"
)

var (
	scoreTargets     []string
	scoreCompetitors []string
)

func newScoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [response.txt]",
		Short: "Score a single response text against target entities",
		Long: `Classify a brand mention in one response and print the rubric score.

Reads the response from the given file, or from stdin when no file is
given. Handy for testing the rubric against real answer text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: scoreCommandE,
	}

	cmd.Flags().StringArrayVarP(&scoreTargets, "target", "t", nil, "Target entity (can be repeated)")
	cmd.Flags().StringArrayVar(&scoreCompetitors, "competitor", nil, "Competitor term (can be repeated)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func scoreCommandE(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error

	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read response file: %w", err)
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	result := scoring.ScoreResponse(string(data), scoreTargets, scoreCompetitors)
	fmt.Fprintf(cmd.OutOrStdout(), "mention: %s\nscore:   %+d\n", result.MentionKind, result.Score)

	return nil
}
