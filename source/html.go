package source

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// blockElements end a line of extracted text.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"pre": true, "blockquote": true, "section": true, "article": true,
	"table": true, "ul": true, "ol": true, "dd": true, "dt": true,
}

var spaceRun = regexp.MustCompile(`\s+`)

// ExtractText converts an HTML document to plain text with one line per block element.
// Script and style content is dropped. Whitespace inside a line is collapsed, except
// inside <pre>, so leading indentation that header rules depend on survives there.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var (
		out  strings.Builder
		line strings.Builder
	)
	flush := func() {
		text := line.String()
		line.Reset()
		if strings.TrimSpace(text) == "" {
			return
		}
		out.WriteString(strings.TrimRight(text, " \t"))
		out.WriteByte('\n')
	}

	var walk func(n *html.Node, pre bool)
	walk = func(n *html.Node, pre bool) {
		switch n.Type {
		case html.TextNode:
			if pre {
				parts := strings.Split(n.Data, "\n")
				for i, p := range parts {
					if i > 0 {
						flush()
					}
					line.WriteString(p)
				}
				return
			}
			text := spaceRun.ReplaceAllString(n.Data, " ")
			if line.Len() == 0 || strings.HasSuffix(line.String(), " ") {
				text = strings.TrimLeft(text, " ")
			}
			line.WriteString(text)
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
			if n.Data == "pre" {
				pre = true
			}
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, pre)
		}
		if block {
			flush()
		}
	}
	walk(doc, false)
	flush()

	return out.String(), nil
}
