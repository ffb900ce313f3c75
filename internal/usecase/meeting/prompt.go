package meeting

import (
	"fmt"
	"strings"
)

const summaryPromptTemplate = `You are an expert meeting analyst. Analyze the following meeting transcript and provide:

1. A concise summary (2-3 paragraphs) of the meeting
2. Key decisions made during the meeting
3. Action items with clear ownership if mentioned

Meeting Transcript:
%s

Please format your response as follows:

SUMMARY:
[Provide a comprehensive summary here]

KEY DECISIONS:
- [Decision 1]
- [Decision 2]
...

ACTION ITEMS:
- [Action item 1]
- [Action item 2]
...

If there are no key decisions or action items, explicitly state "None identified."
`

// BuildSummaryPrompt wraps a transcript in the fixed three-section template
// the parser is tuned to
func BuildSummaryPrompt(transcript string) string {
	return fmt.Sprintf(summaryPromptTemplate, transcript)
}

// BuildCustomPrompt prepends caller instructions to the transcript
func BuildCustomPrompt(instructions, transcript string) string {
	return strings.TrimSpace(instructions) + "\n\nTranscript:\n" + transcript
}
