package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Node is the minimal view of a parsed document the extractor relies on.
// A class argument is a space separated list of classes, all of which must
// be present on the element. An empty class matches any element of the tag.
type Node interface {
	// Find returns the first descendant matching tag and class
	Find(tag, class string) (Node, bool)
	// FindAll returns every descendant matching tag and class in document order
	FindAll(tag, class string) []Node
	// Attr returns the attribute value and whether it was present
	Attr(name string) (string, bool)
	// Text returns the element text content with surrounding whitespace trimmed
	Text() string
}

// Loader parses raw markup into a Node rooted at the document
type Loader func(r io.Reader) (Node, error)

// Backend names accepted by LoaderFor
const (
	BackendGoquery   = "goquery"
	BackendHTMLQuery = "htmlquery"
)

// LoaderFor returns the Loader for the named backend
func LoaderFor(backend string) (Loader, error) {
	switch backend {
	case "", BackendGoquery:
		return LoadGoquery, nil
	case BackendHTMLQuery:
		return LoadHTMLQuery, nil
	default:
		return nil, fmt.Errorf("unknown parser backend %q", backend)
	}
}

// goqueryNode backs Node with a goquery selection (CSS selectors)
type goqueryNode struct {
	sel *goquery.Selection
}

// LoadGoquery parses markup with goquery
func LoadGoquery(r io.Reader) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return goqueryNode{sel: doc.Selection}, nil
}

func cssSelector(tag, class string) string {
	classes := strings.Fields(class)
	if len(classes) == 0 {
		return tag
	}
	return tag + "." + strings.Join(classes, ".")
}

func (n goqueryNode) Find(tag, class string) (Node, bool) {
	found := n.sel.Find(cssSelector(tag, class)).First()
	if found.Length() == 0 {
		return nil, false
	}
	return goqueryNode{sel: found}, true
}

func (n goqueryNode) FindAll(tag, class string) []Node {
	var nodes []Node
	n.sel.Find(cssSelector(tag, class)).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, goqueryNode{sel: s})
	})
	return nodes
}

func (n goqueryNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n goqueryNode) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

// htmlqueryNode backs Node with an x/net/html tree queried through XPath
type htmlqueryNode struct {
	node *html.Node
}

// LoadHTMLQuery parses markup with antchfx/htmlquery
func LoadHTMLQuery(r io.Reader) (Node, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return htmlqueryNode{node: doc}, nil
}

func xpathExpr(tag, class string) string {
	var b strings.Builder
	b.WriteString(".//")
	b.WriteString(tag)
	for _, c := range strings.Fields(class) {
		fmt.Fprintf(&b, "[contains(concat(' ', normalize-space(@class), ' '), ' %s ')]", c)
	}
	return b.String()
}

func (n htmlqueryNode) Find(tag, class string) (Node, bool) {
	found, err := htmlquery.Query(n.node, xpathExpr(tag, class))
	if err != nil || found == nil {
		return nil, false
	}
	return htmlqueryNode{node: found}, true
}

func (n htmlqueryNode) FindAll(tag, class string) []Node {
	found, err := htmlquery.QueryAll(n.node, xpathExpr(tag, class))
	if err != nil {
		return nil
	}
	nodes := make([]Node, 0, len(found))
	for _, f := range found {
		nodes = append(nodes, htmlqueryNode{node: f})
	}
	return nodes
}

func (n htmlqueryNode) Attr(name string) (string, bool) {
	for _, a := range n.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (n htmlqueryNode) Text() string {
	return strings.TrimSpace(htmlquery.InnerText(n.node))
}
