package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mmcdole/imgdl/internal/provider"
	"github.com/mmcdole/imgdl/internal/service"
	"github.com/mmcdole/imgdl/internal/ui/styles"
)

// PrintSummary writes the end-of-run summary for report.
func PrintSummary(w io.Writer, report service.Report, dir string) {
	if report.NoResults {
		fmt.Fprintf(w, "No results for %q on %s\n", report.Query.String(), report.Provider)
		fmt.Fprintln(w, styles.SuccessStyle.Render("Done"))
		return
	}

	saved, failed := report.Succeeded(), report.Failed()
	counts := fmt.Sprintf("%d saved, %d failed", saved, failed)
	if report.Elapsed > 0 {
		counts += " (took " + FormatElapsed(report.Elapsed) + ")"
	}
	switch {
	case failed == 0:
		counts = styles.SuccessStyle.Render(counts)
	case saved == 0:
		counts = styles.ErrorStyle.Render(counts)
	default:
		counts = styles.AccentStyle.Render(counts)
	}

	fmt.Fprintln(w, counts)
	if saved > 0 {
		fmt.Fprintln(w, styles.DimStyle.Render("Saved to "+dir))
	}
	if saved == 0 {
		fmt.Fprintln(w, styles.ErrorStyle.Render("All downloads failed"))
		return
	}
	fmt.Fprintln(w, styles.SuccessStyle.Render("Done"))
}

// FormatElapsed rounds d for display: milliseconds under a second, tenths above.
func FormatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}

// PrintProviders lists provider matches, highlighting the matched characters.
func PrintProviders(w io.Writer, matches []provider.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, styles.DimStyle.Render("No matching providers"))
		return
	}

	for _, m := range matches {
		def := m.Definition
		auth := "query parameter " + def.AuthParam
		if def.Auth == provider.AuthHeader {
			auth = "header " + def.AuthParam
		}
		fmt.Fprintf(w, "%s  %s  %s\n",
			highlightMatches(def.Name, m.MatchedIndexes),
			def.Endpoint,
			styles.DimStyle.Render("(key via "+auth+")"),
		)
	}
}

// highlightMatches renders the characters at matchedIndexes with MatchStyle
func highlightMatches(text string, matchedIndexes []int) string {
	if len(matchedIndexes) == 0 {
		return styles.TitleStyle.Render(text)
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder
	for i, r := range text {
		if matchSet[i] {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteString(styles.TitleStyle.Render(string(r)))
		}
	}
	return b.String()
}
