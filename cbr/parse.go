package cbr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const indicatorWrapperClass = "key-indicator_table_wrapper"

// ParseDaily extracts char code -> RUB rate from the daily currency base
// page. Rates are normalized per single unit of currency.
func ParseDaily(page []byte) (map[string]float64, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse daily page: %w", err)
	}

	rows := findAll(doc, "tr")
	if len(rows) < 2 {
		return nil, fmt.Errorf("daily page has no rate rows")
	}

	rates := make(map[string]float64)
	for _, row := range rows[1:] {
		cells := findAll(row, "td")
		if len(cells) < 4 {
			continue
		}
		code := strings.TrimSpace(nodeText(cells[1]))
		unit, err := parseNumber(nodeText(cells[2]))
		if err != nil || unit == 0 {
			continue
		}
		rate, err := parseNumber(nodeText(cells[len(cells)-1]))
		if err != nil {
			continue
		}
		rates[code] = rate / unit
	}
	return rates, nil
}

// ParseKeyIndicators extracts char code -> RUB rate from the key indicators
// page. The page carries several indicator tables; the second holds foreign
// currencies and the third precious metals quoted per gram.
func ParseKeyIndicators(page []byte) (map[string]float64, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse key indicators page: %w", err)
	}

	wrappers := findAllClass(doc, "div", indicatorWrapperClass)
	if len(wrappers) < 3 {
		return nil, fmt.Errorf("expected at least 3 indicator tables, found %d", len(wrappers))
	}

	rates := make(map[string]float64)

	for _, row := range tableRows(wrappers[1]) {
		cells := findAll(row, "td")
		if len(cells) < 3 {
			continue
		}
		codeDiv := findFirstClass(cells[0], "div", "_subinfo")
		if codeDiv == nil {
			continue
		}
		value, err := parseNumber(nodeText(cells[2]))
		if err != nil {
			continue
		}
		rates[strings.TrimSpace(nodeText(codeDiv))] = value
	}

	for _, row := range tableRows(wrappers[2]) {
		chunks := textChunks(row)
		if len(chunks) < 2 {
			continue
		}
		value, err := parseNumber(chunks[len(chunks)-1])
		if err != nil {
			continue
		}
		rates[chunks[1]] = value
	}

	return rates, nil
}

// tableRows returns the data rows of the first table under n, skipping the
// header row.
func tableRows(n *html.Node) []*html.Node {
	rows := findAll(n, "tr")
	if len(rows) < 2 {
		return nil
	}
	return rows[1:]
}

// parseNumber reads a float that may carry comma thousands separators or
// embedded spaces, e.g. "4 512,75".
func parseNumber(text string) (float64, error) {
	clean := strings.NewReplacer(" ", "", ",", "", " ", "").Replace(strings.TrimSpace(text))
	return strconv.ParseFloat(clean, 64)
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	walk(n, func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
		}
	})
	return out
}

func findAllClass(n *html.Node, tag, class string) []*html.Node {
	var out []*html.Node
	walk(n, func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag && hasClass(node, class) {
			out = append(out, node)
		}
	})
	return out
}

func findFirstClass(n *html.Node, tag, class string) *html.Node {
	nodes := findAllClass(n, tag, class)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, token := range strings.Fields(a.Val) {
			if token == class {
				return true
			}
		}
	}
	return false
}

// nodeText concatenates every text node under n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
	})
	return b.String()
}

// textChunks returns the trimmed, non-empty text nodes under n in document
// order.
func textChunks(n *html.Node) []string {
	var out []string
	walk(n, func(node *html.Node) {
		if node.Type != html.TextNode {
			return
		}
		if text := strings.TrimSpace(node.Data); text != "" {
			out = append(out, text)
		}
	})
	return out
}
