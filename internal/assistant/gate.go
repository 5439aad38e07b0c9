package assistant

import (
	"regexp"
	"strings"
)

// OffTopicRefusal is returned for questions rejected by the topic gate.
const OffTopicRefusal = "I'm designed to help with health, fitness, nutrition, and wellness questions. Please ask something related to those topics!"

var (
	onTopicPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\byes\b`),
		regexp.MustCompile(`\bhealth\b`),
		regexp.MustCompile(`\bfitness\b`),
		regexp.MustCompile(`\bnutrition\b`),
		regexp.MustCompile(`\bwellness\b`),
		regexp.MustCompile(`\bexercise\b`),
		regexp.MustCompile(`\bdiet\b`),
		regexp.MustCompile(`\bstress\b`),
		regexp.MustCompile(`\bsleep\b`),
	}
	negationPattern   = regexp.MustCompile(`\bno\b|\bnot\b`)
	listNumberPattern = regexp.MustCompile(`(?m)^\s*(\d+[.)])\s*`)
)

// IsOnTopic interprets the classifier model's answer to the yes/no domain
// question. Only the first 50 characters are considered, the models tend
// to ramble after the actual answer. Anything that matches neither the
// on-topic words nor a plain negation counts as on topic: a garbled
// classifier must never block the chat.
func IsOnTopic(classifierResponse string) bool {
	scope := strings.ToLower(strings.TrimSpace(classifierResponse))
	if runes := []rune(scope); len(runes) > 50 {
		scope = string(runes[:50])
	}

	for _, pattern := range onTopicPatterns {
		if pattern.MatchString(scope) {
			return true
		}
	}
	return !negationPattern.MatchString(scope)
}

// CleanResponse strips leading list numbering like "1." or "2)" from each
// line and trims surrounding whitespace.
func CleanResponse(text string) string {
	return strings.TrimSpace(listNumberPattern.ReplaceAllString(text, ""))
}
