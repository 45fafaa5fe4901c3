package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// HasFrontmatter reports whether content opens with a YAML block.
func HasFrontmatter(content string) bool {
	return strings.HasPrefix(content, separator)
}

// DecodeFrontmatter unmarshals the leading YAML block into out and returns
// the remaining body. Content without a block is returned untouched.
func DecodeFrontmatter(content string, out any) (string, error) {
	if !HasFrontmatter(content) {
		return content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	raw, body, found := strings.Cut(rest, "\n"+separator)
	if !found {
		if strings.HasSuffix(rest, "\n---") {
			raw, body = strings.TrimSuffix(rest, "\n---"), ""
		} else {
			return "", fmt.Errorf("invalid frontmatter: missing closing separator")
		}
	}
	if err := yaml.Unmarshal([]byte(raw), out); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return body, nil
}

func RenderFrontmatter(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}
