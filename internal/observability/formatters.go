// Package observability provides formatted output utilities for the scorecard CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-scorecard/internal/scoring"
	"github.com/jonathan/interview-scorecard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer renders scorecards as text boxes
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// roundTitle names a round by its type and, when known, its number.
func roundTitle(card scoring.RoundCard) string {
	title := strings.ToUpper(card.InterviewType.InterviewRoundName)
	if title == "" {
		title = "INTERVIEW ROUND"
	}
	if card.Interview != nil && card.Interview.RoundNumber > 0 {
		title = fmt.Sprintf("ROUND %d: %s", card.Interview.RoundNumber, title)
	}
	return title
}

// PrintRoundCard outputs one line per reviewer with their rating and verdict.
func (p *Printer) PrintRoundCard(card scoring.RoundCard) {
	var sb strings.Builder

	if card.Candidate.Name != "" {
		sb.WriteString(fmt.Sprintf("Candidate: %s\n", card.Candidate.Name))
	} else if card.Candidate.CandidateID != "" {
		sb.WriteString(fmt.Sprintf("Candidate: %s\n", card.Candidate.CandidateID))
	}
	sb.WriteString(fmt.Sprintf("Category:  %s\n", card.Category))
	if card.Status != "" {
		sb.WriteString(fmt.Sprintf("Status:    %s\n", card.Status))
	}
	sb.WriteString(fmt.Sprintf("Cutoff:    %s\n\n", scoring.FormatRating(card.MinRating)))

	if len(card.Reviewers) == 0 {
		sb.WriteString("No reviewers assigned\n")
	}
	for _, r := range card.Reviewers {
		name := r.User.Name
		if name == "" {
			name = fmt.Sprintf("user %d", r.User.UserID)
		}
		sb.WriteString(fmt.Sprintf("%-20s %-10s %s", name, r.Display, r.Label))
		if !r.Reviewed {
			sb.WriteString(" (no review)")
		}
		sb.WriteString("\n")

		count := min(len(r.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • skill %d: %.1f / 5\n", r.Skills[i].SkillID, r.Skills[i].Average))
		}
		if len(r.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Skills)-maxItemsToShow))
		}
	}

	p.printBox(roundTitle(card), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoundCards prints each card in order, or a note when there are none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRoundCards(cards []scoring.RoundCard) {
	if len(cards) == 0 {
		fmt.Fprintln(p.out, "No interviews found for this round")
		return
	}
	for _, card := range cards {
		p.PrintRoundCard(card)
	}
}

// PrintSkillReview outputs a reviewer's skill review form with its total.
func (p *Printer) PrintSkillReview(sub *types.InterviewSkillSubmission) {
	if sub == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Interview: %d   Reviewer: %d\n", sub.InterviewID, sub.UserID))
	sb.WriteString(fmt.Sprintf("Total:     %.2f\n", sub.TotalScore))

	sections := []struct {
		title  string
		skills []types.SkillWithReview
	}{
		{"Required", sub.RequiredSkills},
		{"Preferred", sub.PreferredSkills},
		{"Extra", sub.ExtraSkills},
	}
	for _, section := range sections {
		if len(section.skills) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", section.title))
		for _, s := range section.skills {
			name := s.SkillName
			if name == "" {
				name = fmt.Sprintf("skill %d", s.SkillID)
			}
			sb.WriteString(fmt.Sprintf("  • %-18s concept %.1f  technical %.1f\n", name, s.ConceptRating, s.TechnicalRating))
		}
	}

	p.printBox("SKILL REVIEW", strings.TrimSuffix(sb.String(), "\n"))
}
