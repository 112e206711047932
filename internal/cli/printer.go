package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/konstantinfoerster/deck-diff-go/internal/deck"
	"github.com/muesli/termenv"
)

var (
	addedColor    = lipgloss.Color("#9ece6a")
	removedColor  = lipgloss.Color("#f7768e")
	modifiedColor = lipgloss.Color("#e0af68")
	mutedColor    = lipgloss.Color("#565f89")
)

type printer struct {
	out      io.Writer
	added    lipgloss.Style
	removed  lipgloss.Style
	modified lipgloss.Style
	muted    lipgloss.Style
	bold     lipgloss.Style
}

// newPrinter colors the output if out is a terminal and colors are not disabled.
func newPrinter(out io.Writer, noColor bool) *printer {
	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &printer{
		out:      out,
		added:    r.NewStyle().Foreground(addedColor),
		removed:  r.NewStyle().Foreground(removedColor),
		modified: r.NewStyle().Foreground(modifiedColor),
		muted:    r.NewStyle().Foreground(mutedColor),
		bold:     r.NewStyle().Bold(true),
	}
}

func (p *printer) println(a ...any) {
	_, _ = fmt.Fprintln(p.out, a...)
}

func (p *printer) printResolve(result deck.ResolveResult) {
	for _, e := range displayEntries(result.Entries) {
		line := formatEntry(e.Quantity, e.Name, e.SetCode, e.CollectorNumber, e.Categories)
		switch {
		case e.IsResolved() && e.Card.ImageURL() != "":
			p.println(" ", line, p.muted.Render(e.Card.ImageURL()))
		case e.IsResolved():
			p.println(" ", line)
		default:
			p.println(p.removed.Render("?"), line, p.muted.Render("(unknown card)"))
		}
	}
	p.printErrors("", result.Errors)

	s := result.Stats()
	p.println()
	p.println(fmt.Sprintf("%s cards, %d of %d entries resolved",
		p.bold.Render(fmt.Sprintf("%d", result.TotalCards)), s.Resolved, s.UniqueCards))
}

func (p *printer) printDiff(result deck.DiffResult) {
	for _, e := range displayDiffEntries(result.Added) {
		p.println(p.added.Render("+"), p.added.Render(fmt.Sprintf("%dx %s", e.NewQuantity, e.CardName)))
	}
	for _, e := range displayDiffEntries(result.Removed) {
		p.println(p.removed.Render("-"), p.removed.Render(fmt.Sprintf("%dx %s", e.OldQuantity, e.CardName)))
	}
	for _, e := range displayDiffEntries(result.Modified) {
		p.println(p.modified.Render("~"), p.modified.Render(e.CardName),
			p.muted.Render(fmt.Sprintf("%d -> %d", e.OldQuantity, e.NewQuantity)))
	}
	p.printErrors("old ", result.ErrorsDeck1)
	p.printErrors("new ", result.ErrorsDeck2)

	p.println()
	if !result.HasChanges() {
		p.println(p.muted.Render(fmt.Sprintf("No changes, %d unchanged", len(result.Unchanged))))

		return
	}
	p.println(fmt.Sprintf("Diff: %s added, %s removed, %s modified, %d unchanged",
		p.added.Bold(true).Render(fmt.Sprintf("%d", len(result.Added))),
		p.removed.Bold(true).Render(fmt.Sprintf("%d", len(result.Removed))),
		p.modified.Bold(true).Render(fmt.Sprintf("%d", len(result.Modified))),
		len(result.Unchanged)))
}

func (p *printer) printStats(s deck.Stats, top int) {
	p.println(fmt.Sprintf("Total cards:  %d", s.TotalCards))
	p.println(fmt.Sprintf("Entries:      %d", s.UniqueCards))
	p.println(fmt.Sprintf("Resolved:     %d (%d%%)", s.Resolved, s.ResolvedPercentage))
	p.println(fmt.Sprintf("Unresolved:   %d", s.Unresolved))
	p.println(fmt.Sprintf("Errors:       %d", s.Errors))

	categories := s.TopCategories(top)
	if len(categories) == 0 {
		return
	}
	p.println()
	p.println(p.bold.Render("Categories"))
	for _, c := range categories {
		p.println(fmt.Sprintf("  %-20s %d", c.Name, c.Quantity))
	}
}

func (p *printer) printErrors(prefix string, errs []deck.LineError) {
	for _, e := range errs {
		p.println(p.removed.Render("!"), p.muted.Render(fmt.Sprintf("%sline %d:", prefix, e.LineNumber)),
			e.Error, p.muted.Render(fmt.Sprintf("%q", e.Line)))
	}
}

// displayRank puts commanders first and lands last.
func displayRank(categories []string) int {
	var land bool
	for _, c := range categories {
		c = strings.ToLower(c)
		if strings.Contains(c, "commander") {
			return 0
		}
		if strings.Contains(c, "land") {
			land = true
		}
	}
	if land {
		return 2
	}

	return 1
}

func displayCompare(rankA, rankB int, nameA, nameB string) int {
	if rankA != rankB {
		return rankA - rankB
	}
	if c := strings.Compare(strings.ToLower(nameA), strings.ToLower(nameB)); c != 0 {
		return c
	}

	return strings.Compare(nameA, nameB)
}

// displayEntries returns a sorted copy for the text output, the result itself keeps the deck order.
func displayEntries(entries []deck.Entry) []deck.Entry {
	sorted := append([]deck.Entry(nil), entries...)
	slices.SortStableFunc(sorted, func(a, b deck.Entry) int {
		return displayCompare(displayRank(a.Categories), displayRank(b.Categories), a.Name, b.Name)
	})

	return sorted
}

// displayDiffEntries returns a sorted copy for the text output, json buckets stay sorted by name.
func displayDiffEntries(entries []deck.DiffEntry) []deck.DiffEntry {
	sorted := append([]deck.DiffEntry(nil), entries...)
	slices.SortStableFunc(sorted, func(a, b deck.DiffEntry) int {
		return displayCompare(displayRank(a.Categories), displayRank(b.Categories), a.CardName, b.CardName)
	})

	return sorted
}

func formatEntry(qty int, name, setCode, number string, categories []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx %s", qty, name)
	if setCode != "" {
		fmt.Fprintf(&sb, " (%s) %s", setCode, number)
	}
	if len(categories) > 0 {
		fmt.Fprintf(&sb, " [%s]", strings.Join(categories, ","))
	}

	return sb.String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output %w", err)
	}

	return nil
}
