// Package ingest loads rejection letters and policy documents from disk.
// Plain text and markdown pass through; HTML is reduced to its visible text.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// maxDocumentBytes caps how much of a document is read; rejection letters
// and policy wordings are short, anything larger is a wrong file.
const maxDocumentBytes = 2 << 20

// ReadDocument loads a document and returns its text content. Supported
// extensions: .txt, .md, .html, .htm. The extension check is
// case-insensitive.
func ReadDocument(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if info.Size() > maxDocumentBytes {
		return "", fmt.Errorf("read document: %s exceeds %d bytes", path, maxDocumentBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return string(data), nil
	case ".html", ".htm":
		text, err := htmlToText(string(data))
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", path, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("unsupported document type %q (want .txt, .md, .html or .htm)", filepath.Ext(path))
	}
}

// htmlToText extracts visible text from HTML, skipping scripts/styles
func htmlToText(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		// Block-level breaks keep letter paragraphs apart
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "br", "li", "tr", "h1", "h2", "h3", "h4":
				buf.WriteString("\n")
			}
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}
