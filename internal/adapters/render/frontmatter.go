package render

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v2"
)

// A front matter block must be followed by an empty line. Without one, a
// leading "---" is a thematic break and the text after it stays Markdown.
var frontMatterFormats = []*frontmatter.Format{
	{Start: "---", End: "---", Unmarshal: yaml.Unmarshal, RequiresNewLine: true},
	{Start: "+++", End: "+++", Unmarshal: toml.Unmarshal, RequiresNewLine: true},
}

// stripFrontMatter removes a leading YAML (---) or TOML (+++) front matter
// block from Markdown. Content without one, or with a block that does not
// parse, is returned unchanged.
func stripFrontMatter(content string) string {
	if !strings.HasPrefix(content, "---") && !strings.HasPrefix(content, "+++") {
		return content
	}

	var matter map[string]any

	rest, err := frontmatter.Parse(strings.NewReader(content), &matter, frontMatterFormats...)
	if err != nil {
		return content
	}

	return strings.TrimLeft(string(rest), "\r\n")
}
