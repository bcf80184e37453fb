package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jonathan/interview-scorecard/internal/config"
	"github.com/jonathan/interview-scorecard/internal/observability"
	"github.com/jonathan/interview-scorecard/internal/schemas"
	"github.com/jonathan/interview-scorecard/internal/scoring"
	"github.com/jonathan/interview-scorecard/internal/types"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rate the reviewers of a round from a round data file",
	Long: `Read round data exported from the API (one round or a list of rounds), validate it against
the round data schema and print each reviewer's rating and verdict.`,
	RunE: runScore,
}

var (
	scoreRoundData string
	scoreMinRating float64
	scoreLabels    string
	scoreJSON      bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreRoundData, "round-data", "i", "", "Path to round data JSON file (required)")
	scoreCmd.Flags().Float64Var(&scoreMinRating, "min-rating", scoring.DefaultMinRating, "Selection cutoff on the 0-10 scale")
	scoreCmd.Flags().StringVar(&scoreLabels, "labels", "", "Verdict wording: selected or good")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print scorecards as JSON")

	if err := scoreCmd.MarkFlagRequired("round-data"); err != nil {
		panic(fmt.Sprintf("failed to mark round-data flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

// scoreOptions controls how round data is rated and printed.
type scoreOptions struct {
	MinRating float64
	Labels    scoring.LabelStyle
	JSON      bool
}

func runScore(cmd *cobra.Command, _ []string) error {
	opts := scoreOptions{MinRating: scoreMinRating, Labels: scoring.ParseLabelStyle(scoreLabels), JSON: scoreJSON}

	// Unset flags fall back to the service configuration
	if !cmd.Flags().Changed("min-rating") || scoreLabels == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("min-rating") {
			opts.MinRating = cfg.Scoring.DefaultMinRating
		}
		if scoreLabels == "" {
			opts.Labels = scoring.ParseLabelStyle(cfg.Scoring.Labels)
		}
	}

	data, err := os.ReadFile(scoreRoundData)
	if err != nil {
		return fmt.Errorf("failed to read round data: %w", err)
	}
	return scoreRounds(data, opts, cmd.OutOrStdout())
}

// scoreRounds validates, rates and prints round data.
func scoreRounds(data []byte, opts scoreOptions, out io.Writer) error {
	if math.IsNaN(opts.MinRating) || math.IsInf(opts.MinRating, 0) {
		return fmt.Errorf("min-rating must be a finite number")
	}
	if err := schemas.ValidateRoundData(data); err != nil {
		return fmt.Errorf("round data is invalid: %w", err)
	}

	rounds, err := decodeRounds(data)
	if err != nil {
		return err
	}

	cards := make([]scoring.RoundCard, 0, len(rounds))
	for _, rd := range rounds {
		// Exports that predate stored categories carry only the round name
		if rd.InterviewType.Category == "" {
			rd.InterviewType.Category = types.CategoryForName(rd.InterviewType.InterviewRoundName)
		}
		cards = append(cards, scoring.RoundRatings(rd, opts.MinRating, opts.Labels))
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}
	observability.NewPrinter(out).PrintRoundCards(cards)
	return nil
}

// decodeRounds accepts a single round object or a list of rounds.
func decodeRounds(data []byte) ([]types.RoundData, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rounds []types.RoundData
		if err := json.Unmarshal(trimmed, &rounds); err != nil {
			return nil, fmt.Errorf("failed to parse round data: %w", err)
		}
		return rounds, nil
	}

	var round types.RoundData
	if err := json.Unmarshal(trimmed, &round); err != nil {
		return nil, fmt.Errorf("failed to parse round data: %w", err)
	}
	return []types.RoundData{round}, nil
}
