package fragment

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Script describes one <script> element extracted from a fragment, in
// document order. External scripts carry Src; inline scripts carry Inline.
type Script struct {
	Src    string
	Inline string
	Attrs  map[string]string
}

// External reports whether the script references an external source.
func (s Script) External() bool { return s.Src != "" }

// Fragment is parsed fragment markup with its scripts stripped out. Markup
// is what gets swapped into the page; Scripts is what the engine activates
// afterwards.
type Fragment struct {
	Markup  string
	Scripts []Script
}

// Parse splits raw fragment markup into renderable markup and script
// descriptors. Script elements are removed from the markup; their document
// order is preserved in Scripts.
func Parse(markup string) (Fragment, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), bodyContext())
	if err != nil {
		return Fragment{}, err
	}

	var scripts []Script
	var rendered strings.Builder

	for _, node := range nodes {
		if node.Type == html.ElementNode && node.Data == "script" {
			scripts = append(scripts, describeScript(node))
			continue
		}
		scripts = append(scripts, extractScripts(node)...)
		if err := html.Render(&rendered, node); err != nil {
			return Fragment{}, err
		}
	}

	return Fragment{Markup: rendered.String(), Scripts: scripts}, nil
}

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

// extractScripts removes script elements from the tree rooted at n and
// returns their descriptors in document order.
func extractScripts(n *html.Node) []Script {
	var scripts []Script

	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		child := node.FirstChild
		for child != nil {
			next := child.NextSibling
			if child.Type == html.ElementNode && child.Data == "script" {
				scripts = append(scripts, describeScript(child))
				node.RemoveChild(child)
			} else {
				walk(child)
			}
			child = next
		}
	}

	walk(n)
	return scripts
}

func describeScript(node *html.Node) Script {
	script := Script{Attrs: make(map[string]string)}
	for _, attr := range node.Attr {
		if attr.Key == "src" {
			script.Src = attr.Val
			continue
		}
		script.Attrs[attr.Key] = attr.Val
	}
	var inline strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			inline.WriteString(child.Data)
		}
	}
	script.Inline = inline.String()
	return script
}
