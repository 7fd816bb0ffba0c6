package domsanitizer

import (
	"errors"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrInvalidArgument is returned when a DOM helper is given a selection
// that is empty or holds something other than element nodes.
var ErrInvalidArgument = errors.New("domsanitizer: invalid element provided")

// SetInnerHTML replaces the children of every element in sel with markup
// sanitized at level. Nothing is modified when sel is invalid.
func (s *Sanitizer) SetInnerHTML(sel *goquery.Selection, markup string, level SecurityLevel) error {
	if err := checkElements(sel); err != nil {
		return err
	}
	sel.SetHtml(s.SanitizeHTML(markup, level))
	return nil
}

// SetTextContent replaces the children of every element in sel with a
// single text node holding SanitizeText(text).
func (s *Sanitizer) SetTextContent(sel *goquery.Selection, text string) error {
	if err := checkElements(sel); err != nil {
		return err
	}
	sel.SetText(s.SanitizeText(text))
	return nil
}

// SafeTextNode returns a detached text node holding SanitizeText(text).
func (s *Sanitizer) SafeTextNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s.SanitizeText(text)}
}

func checkElements(sel *goquery.Selection) error {
	if sel == nil || sel.Length() == 0 {
		return ErrInvalidArgument
	}
	for _, n := range sel.Nodes {
		if n == nil || n.Type != html.ElementNode {
			return ErrInvalidArgument
		}
	}
	return nil
}
