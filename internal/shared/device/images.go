package device

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// imageMargin is subtracted from the device width to leave room for page padding.
const imageMargin = 40

var droppedElements = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Iframe: true,
	atom.Object: true,
	atom.Embed:  true,
	atom.Form:   true,
}

// AdaptFragment prepares third-party HTML for display on the device: active
// content is removed and images wider than the screen are scaled down.
func AdaptFragment(fragment string, p Profile) (string, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	limit := p.MaxImageWidth - imageMargin
	var buf bytes.Buffer
	for _, n := range nodes {
		if !keep(n) {
			continue
		}
		adapt(n, limit)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func keep(n *html.Node) bool {
	return n.Type != html.ElementNode || !droppedElements[n.DataAtom]
}

func adapt(n *html.Node, limit int) {
	if n.Type == html.ElementNode {
		n.Attr = cleanAttrs(n.Attr)
		if n.DataAtom == atom.Img && limit > 0 {
			fitImage(n, limit)
		}
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if keep(c) {
			adapt(c, limit)
		} else {
			n.RemoveChild(c)
		}
		c = next
	}
}

func cleanAttrs(attrs []html.Attribute) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if strings.HasPrefix(key, "on") {
			continue
		}
		if (key == "href" || key == "src") && strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "javascript:") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func fitImage(n *html.Node, limit int) {
	width, hasWidth := intAttr(n, "width")
	if !hasWidth || width <= limit {
		return
	}

	if height, ok := intAttr(n, "height"); ok {
		setAttr(n, "height", strconv.Itoa(height*limit/width))
	}
	setAttr(n, "width", strconv.Itoa(limit))
}

func intAttr(n *html.Node, key string) (int, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			v, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(a.Val), "px"))
			return v, err == nil && v > 0
		}
	}
	return 0, false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
