package textscan

import (
	"regexp"
	"strings"

	"github.com/unifeed/unifeed-cli/pkg/models"
)

// Token patterns. A token is one or more alphanumerics/underscores; anything
// else terminates it.
var (
	hashtagPattern = regexp.MustCompile(`#([A-Za-z0-9_]+)`)
	mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_]+)`)

	// triggerPattern matches an unterminated "@token" run at the end of the
	// text preceding the cursor. The token may be empty (a bare "@").
	triggerPattern = regexp.MustCompile(`@([A-Za-z0-9_]*)$`)
)

// Analysis is the result of scanning composer text. Hashtags and mentions are
// derived from the whole text; the trigger depends only on the cursor.
type Analysis struct {
	Hashtags []string
	Mentions []string
	Trigger  models.MentionTrigger
}

// Analyze rescans the entire text and recomputes the mention trigger for the
// given cursor offset (in runes). It is run on every text change and on every
// cursor move, so the derived fields can never drift from the text.
func Analyze(text string, cursor int) Analysis {
	return Analysis{
		Hashtags: Hashtags(text),
		Mentions: Mentions(text),
		Trigger:  TriggerAt(text, cursor),
	}
}

// Hashtags returns every #token in text, without the leading '#', in order of
// first appearance. Case is preserved as typed; duplicates are dropped
// case-insensitively with the first occurrence winning.
func Hashtags(text string) []string {
	return scanTokens(hashtagPattern, text)
}

// Mentions returns every @token in text, without the leading '@', in order of
// first appearance, deduplicated like Hashtags.
func Mentions(text string) []string {
	return scanTokens(mentionPattern, text)
}

func scanTokens(pattern *regexp.Regexp, text string) []string {
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		key := strings.ToLower(m[1])
		if seen[key] {
			continue
		}
		seen[key] = true
		tokens = append(tokens, m[1])
	}
	return tokens
}

// TriggerAt inspects only the text before the cursor (a rune offset) and
// reports whether an autocomplete popup should be active. The trigger is
// active iff the trailing run matches "@" followed by zero or more word
// characters; any whitespace or other non-word character after the "@"
// deactivates it.
func TriggerAt(text string, cursor int) models.MentionTrigger {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}

	before := string(runes[:cursor])
	m := triggerPattern.FindStringSubmatch(before)
	if m == nil {
		return models.MentionTrigger{CursorOffset: cursor}
	}

	return models.MentionTrigger{
		Active:       true,
		Query:        m[1],
		CursorOffset: cursor,
	}
}
