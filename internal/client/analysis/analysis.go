// Package analysis turns rough field notes into a structured summary, a tag
// list and the materials mentioned. The remote model is treated as fallible:
// Analyze never returns an error, it degrades to Fallback().
package analysis

import (
	"context"
	"slices"
	"strings"
)

// FallbackSummary is shown when automatic analysis could not run.
const FallbackSummary = "Автоматический анализ не удался. Пожалуйста, проверьте соединение."

// Analysis is the structured result of analysing field notes.
type Analysis struct {
	Summary            string   `json:"summary"`
	SuggestedTags      []string `json:"suggestedTags"`
	PotentialMaterials []string `json:"potentialMaterials"`

	// Fallback is set when the result is the default value rather than a
	// model answer.
	Fallback bool `json:"-"`
}

// Analyzer analyses free-text notes.
type Analyzer interface {
	Analyze(ctx context.Context, notes string) Analysis
}

func Fallback() Analysis {
	return Analysis{
		Summary:            FallbackSummary,
		SuggestedTags:      []string{},
		PotentialMaterials: []string{},
		Fallback:           true,
	}
}

// Annotate prefixes description with the summary. A fallback result leaves
// the description untouched.
func (a Analysis) Annotate(description string) string {
	if a.Fallback || strings.TrimSpace(a.Summary) == "" {
		return description
	}
	return a.Summary + "\n\n[Original Notes]:\n" + description
}

// MergeTags appends the suggested tags that are not already in tags,
// ignoring blanks and comparing case-insensitively.
func (a Analysis) MergeTags(tags []string) []string {
	out := slices.Clone(tags)
	if out == nil {
		out = []string{}
	}
	for _, t := range a.SuggestedTags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if slices.ContainsFunc(out, func(have string) bool { return strings.EqualFold(have, t) }) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Nop is an Analyzer that always falls back. Used when no model is configured.
type Nop struct{}

func (Nop) Analyze(context.Context, string) Analysis { return Fallback() }
