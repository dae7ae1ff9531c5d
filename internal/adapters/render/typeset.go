package render

import (
	"bytes"
	"errors"
	"html"
	"io"
	"strings"

	nethtml "golang.org/x/net/html"
)

// Typesetter converts one TeX expression into markup.
// A returned error leaves the expression as literal text.
type Typesetter interface {
	Typeset(tex string, display bool) (string, error)
}

// ErrBadMath is returned by MarkupTypesetter for expressions it will not mark up.
var ErrBadMath = errors.New("malformed math expression")

// MarkupTypesetter wraps math in spans carrying the standard \(..\) and
// \[..\] delimiters for a client-side math renderer to pick up.
type MarkupTypesetter struct{}

// Typeset implements Typesetter.
func (MarkupTypesetter) Typeset(tex string, display bool) (string, error) {
	if strings.TrimSpace(tex) == "" || !balancedBraces(tex) {
		return "", ErrBadMath
	}

	if display {
		return `<span class="math math-display">\[` + html.EscapeString(tex) + `\]</span>`, nil
	}

	return `<span class="math math-inline">\(` + html.EscapeString(tex) + `\)</span>`, nil
}

func balancedBraces(tex string) bool {
	depth := 0
	for i := 0; i < len(tex); i++ {
		switch tex[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}

	return depth == 0
}

type delimiter struct {
	left, right string
	display     bool
}

// Checked in order at each position, so $$ wins over $.
var mathDelimiters = []delimiter{
	{left: "$$", right: "$$", display: true},
	{left: "$", right: "$", display: false},
	{left: `\[`, right: `\]`, display: true},
	{left: `\(`, right: `\)`, display: false},
}

// Text inside these elements is never typeset.
var skipTags = map[string]bool{
	"script":   true,
	"noscript": true,
	"style":    true,
	"textarea": true,
	"pre":      true,
	"code":     true,
	"option":   true,
}

// typesetHTML typesets math found in the text nodes of an HTML fragment.
// Markup and text without math are copied through byte for byte.
func typesetHTML(fragment string, ts Typesetter) string {
	if !strings.ContainsAny(fragment, `$\`) {
		return fragment
	}

	var out bytes.Buffer
	out.Grow(len(fragment))

	z := nethtml.NewTokenizer(strings.NewReader(fragment))
	skipDepth := 0

	for {
		tt := z.Next()
		if tt == nethtml.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return out.String()
			}

			return fragment
		}

		raw := z.Raw()

		switch tt {
		case nethtml.StartTagToken:
			name, _ := z.TagName()
			if skipTags[string(name)] {
				skipDepth++
			}
		case nethtml.EndTagToken:
			name, _ := z.TagName()
			if skipTags[string(name)] && skipDepth > 0 {
				skipDepth--
			}
		case nethtml.TextToken:
			if skipDepth == 0 {
				out.WriteString(typesetText(string(raw), ts))
				continue
			}
		}

		out.Write(raw)
	}
}

// typesetText scans raw (still entity-escaped) text for delimited math.
// An opening delimiter with no matching close ends the scan.
func typesetText(raw string, ts Typesetter) string {
	var out strings.Builder

	text := raw
	for {
		start, d := nextDelimiter(text)
		if d == nil {
			break
		}

		end := findEndOfMath(text, start+len(d.left), d.right)
		if end < 0 {
			break
		}

		tex := html.UnescapeString(text[start+len(d.left) : end])
		span := text[start : end+len(d.right)]

		out.WriteString(text[:start])

		if typeset, err := ts.Typeset(tex, d.display); err == nil {
			out.WriteString(typeset)
		} else {
			out.WriteString(span)
		}

		text = text[end+len(d.right):]
	}

	out.WriteString(text)

	return out.String()
}

func nextDelimiter(text string) (int, *delimiter) {
	for i := 0; i < len(text); i++ {
		if text[i] != '$' && text[i] != '\\' {
			continue
		}

		for j := range mathDelimiters {
			if strings.HasPrefix(text[i:], mathDelimiters[j].left) {
				return i, &mathDelimiters[j]
			}
		}
	}

	return -1, nil
}

// findEndOfMath returns the index of the closing delimiter at brace depth
// zero, skipping backslash-escaped characters, or -1.
func findEndOfMath(text string, from int, right string) int {
	depth := 0
	for i := from; i < len(text); i++ {
		switch {
		case depth <= 0 && strings.HasPrefix(text[i:], right):
			return i
		case text[i] == '\\':
			i++
		case text[i] == '{':
			depth++
		case text[i] == '}':
			depth--
		}
	}

	return -1
}
