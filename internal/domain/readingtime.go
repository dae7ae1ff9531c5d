package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

// Markup removed before counting words, applied in this order.
var readingTimeStrips = []*regexp.Regexp{
	regexp.MustCompile("```[\\s\\S]*?```"),  // fenced code
	regexp.MustCompile("`[^`]*`"),           // inline code
	regexp.MustCompile(`!\[.*?\]\(.*?\)`),   // images
	regexp.MustCompile(`\[.*?\]\(.*?\)`),    // links
	regexp.MustCompile(`[#*_~]`),            // emphasis and heading symbols
}

// WordCount counts the words left in raw Markdown after stripping code,
// images, links and formatting symbols.
func WordCount(text string) int {
	for _, re := range readingTimeStrips {
		text = re.ReplaceAllString(text, "")
	}

	return len(strings.Fields(text))
}

// ReadingMinutes converts a word count to whole minutes, rounding up.
// The result is never below one.
func ReadingMinutes(words, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = WordsPerMinute
	}

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}

	return minutes
}

// ReadingTime estimates reading time for raw Markdown, e.g. "3 min read".
func ReadingTime(text string) string {
	return FormatReadingTime(ReadingMinutes(WordCount(text), WordsPerMinute))
}

// FormatReadingTime renders minutes the way post headers show them.
func FormatReadingTime(minutes int) string {
	return fmt.Sprintf("%d min read", minutes)
}
