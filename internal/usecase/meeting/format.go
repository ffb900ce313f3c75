package meeting

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// FormatTimestamped renders segments as "[MM:SS] text" lines
func FormatTimestamped(segments []entities.Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		total := int(seg.Start)
		lines = append(lines, fmt.Sprintf("[%02d:%02d] %s", total/60, total%60, strings.TrimSpace(seg.Text)))
	}
	return strings.Join(lines, "\n")
}
