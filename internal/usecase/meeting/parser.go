package meeting

import (
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionDecisions
	sectionActions
)

const (
	headerSummary   = "SUMMARY:"
	headerDecisions = "KEY DECISION"
	headerActions   = "ACTION ITEM"

	bulletChars   = "-•* \t"
	emphasisChars = "*_ \t"
)

// Parser turns a free-form summary answer into summary text, decisions and
// action items. It never fails: unrecognised input degrades to empty fields.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse scans the answer line by line, tracking the current section
func (p *Parser) Parse(raw string) *entities.ParsedSummary {
	var (
		summaryLines []string
		decisions    = make([]string, 0)
		actions      = make([]string, 0)
		current      = sectionNone
	)

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)

		// Headers win over every other rule and carry no content
		switch {
		case strings.Contains(upper, headerSummary):
			current = sectionSummary
			continue
		case strings.Contains(upper, headerDecisions):
			current = sectionDecisions
			continue
		case strings.Contains(upper, headerActions):
			current = sectionActions
			continue
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch current {
		case sectionSummary:
			summaryLines = append(summaryLines, line)
		case sectionDecisions:
			if item, ok := listItem(line, upper); ok {
				decisions = append(decisions, item)
			}
		case sectionActions:
			if item, ok := listItem(line, upper); ok {
				actions = append(actions, item)
			}
		}
	}

	return &entities.ParsedSummary{
		Summary:      strings.TrimSpace(strings.Join(summaryLines, " ")),
		KeyDecisions: dropEmpty(decisions),
		ActionItems:  dropEmpty(actions),
		RawResponse:  raw,
	}
}

// listItem extracts a list entry from a line inside a list section.
// Bulleted lines lose every leading bullet character; bare lines are kept
// unless they look like a repeated header.
func listItem(line, upper string) (string, bool) {
	var item string
	switch {
	case hasBullet(line):
		item = strings.TrimLeft(line, bulletChars)
	case strings.Contains(upper, "ACTION") || strings.Contains(upper, "DECISION"):
		return "", false
	default:
		item = line
	}
	if isNoneSentinel(item) {
		return "", false
	}
	return item, true
}

func hasBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*")
}

// isNoneSentinel matches the "None identified." placeholder the prompt asks
// for when a list is empty, with or without markdown emphasis
func isNoneSentinel(item string) bool {
	item = strings.Trim(item, emphasisChars)
	item = strings.Trim(strings.TrimSuffix(item, "."), emphasisChars)
	return strings.EqualFold(item, "none identified")
}

func dropEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
