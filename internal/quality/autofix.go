package quality

import (
	"log"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AutoFix applies deterministic, category-scoped corrections directly
// against the parsed document and renders it back. It fixes only what the
// validators flag mechanically: missing metadata, unlabeled images, broken
// empty links, and a missing lang attribute. One pass, no convergence loop.
func AutoFix(raw string, userName string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		log.Printf("quality: autofix skipped, document unparseable: %v", err)
		return raw, false
	}

	changed := false

	if fixLang(doc) {
		changed = true
	}
	if fixHead(doc, userName) {
		changed = true
	}
	if fixImages(doc) {
		changed = true
	}
	if fixLinks(doc) {
		changed = true
	}
	if !changed {
		return raw, false
	}

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		log.Printf("quality: autofix render failed: %v", err)
		return raw, false
	}
	out := sb.String()
	if !strings.HasPrefix(strings.ToLower(out), "<!doctype") {
		out = "<!DOCTYPE html>" + out
	}
	return out, true
}

func fixLang(doc *html.Node) bool {
	for _, node := range findAll(doc, "html") {
		if lang, ok := attr(node, "lang"); !ok || strings.TrimSpace(lang) == "" {
			node.Attr = append(node.Attr, html.Attribute{Key: "lang", Val: "en"})
			return true
		}
	}
	return false
}

func fixHead(doc *html.Node, userName string) bool {
	heads := findAll(doc, "head")
	if len(heads) == 0 {
		return false
	}
	head := heads[0]
	changed := false

	var hasCharset, hasViewport, hasTitle bool
	for _, meta := range findAll(head, "meta") {
		if _, ok := attr(meta, "charset"); ok {
			hasCharset = true
		}
		if name, _ := attr(meta, "name"); name == "viewport" {
			hasViewport = true
		}
	}
	for _, t := range findAll(head, "title") {
		if strings.TrimSpace(textContent(t)) != "" {
			hasTitle = true
		}
	}

	if !hasCharset {
		head.InsertBefore(elem(atom.Meta, "meta", html.Attribute{Key: "charset", Val: "utf-8"}), head.FirstChild)
		changed = true
	}
	if !hasViewport {
		head.AppendChild(elem(atom.Meta, "meta",
			html.Attribute{Key: "name", Val: "viewport"},
			html.Attribute{Key: "content", Val: "width=device-width, initial-scale=1"}))
		changed = true
	}
	if !hasTitle {
		title := elem(atom.Title, "title")
		text := "Portfolio"
		if strings.TrimSpace(userName) != "" {
			text = strings.TrimSpace(userName) + " - Portfolio"
		}
		title.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		head.AppendChild(title)
		changed = true
	}
	return changed
}

func fixImages(doc *html.Node) bool {
	changed := false
	for _, img := range findAll(doc, "img") {
		if alt, ok := attr(img, "alt"); !ok || strings.TrimSpace(alt) == "" {
			setAttr(img, "alt", "Project image")
			changed = true
		}
	}
	return changed
}

func fixLinks(doc *html.Node) bool {
	changed := false
	for _, a := range findAll(doc, "a") {
		if href, ok := attr(a, "href"); !ok || strings.TrimSpace(href) == "" {
			setAttr(a, "href", "#")
			changed = true
		}
	}
	return changed
}

func elem(a atom.Atom, data string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: data, Attr: attrs}
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
