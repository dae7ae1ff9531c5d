package render

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	displayMath = regexp.MustCompile(`\$\$([\s\S]+?)\$\$`)
	inlineMath  = regexp.MustCompile(`\$([^$\n]+?)\$`)
	placeholder = regexp.MustCompile(`MATHBLOCK(\d+)END`)
)

// mathSpans holds math extracted before Markdown parsing, indexed by
// extraction order.
type mathSpans []string

// extractMath replaces display then inline math spans with numbered
// placeholders, recording each span in \[..\] or \(..\) form.
func extractMath(content string) (string, mathSpans) {
	var spans mathSpans

	extract := func(re *regexp.Regexp, open, closing string) {
		content = re.ReplaceAllStringFunc(content, func(match string) string {
			tex := re.FindStringSubmatch(match)[1]
			spans = append(spans, open+tex+closing)

			return "MATHBLOCK" + strconv.Itoa(len(spans)-1) + "END"
		})
	}

	extract(displayMath, `\[`, `\]`)
	extract(inlineMath, `\(`, `\)`)

	return content, spans
}

// restore puts every recorded span back in place of its placeholder.
// Placeholders with no recorded span are left alone.
func (s mathSpans) restore(html string) string {
	if len(s) == 0 {
		return html
	}

	return placeholder.ReplaceAllStringFunc(html, func(match string) string {
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(match, "MATHBLOCK"), "END"))
		if err != nil || n >= len(s) {
			return match
		}

		return s[n]
	})
}
