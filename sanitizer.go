package domsanitizer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// schemeMark stands in for a removed URL scheme match until the tree walk
// has seen it. U+FDD0 is a noncharacter and is stripped from all input.
const schemeMark = "\uFDD0"

// Sanitizer applies a Policy to untrusted text, HTML and JSON values.
// Construct one with New and share it; it holds no mutable state.
type Sanitizer struct {
	policy        *Policy
	logger        zerolog.Logger
	metrics       *Metrics
	maxTextLength int
	strict        *bluemonday.Policy
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithPolicy replaces DefaultPolicy.
func WithPolicy(p *Policy) Option {
	return func(s *Sanitizer) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithLogger sets the logger used to report removed dangerous content.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Sanitizer) { s.logger = l }
}

// WithMetrics records removals in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Sanitizer) { s.metrics = m }
}

// WithMaxTextLength overrides the policy's SanitizeText cap.
func WithMaxTextLength(n int) Option {
	return func(s *Sanitizer) { s.maxTextLength = n }
}

// New returns a Sanitizer using DefaultPolicy unless overridden by opts.
func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{
		policy: DefaultPolicy(),
		logger: zerolog.Nop(),
		strict: bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxTextLength <= 0 {
		s.maxTextLength = s.policy.MaxTextLength
	}
	if s.maxTextLength <= 0 {
		s.maxTextLength = DefaultMaxTextLength
	}
	return s
}

// Policy returns the policy in use. Callers must not modify it.
func (s *Sanitizer) Policy() *Policy {
	return s.policy
}

// EscapeHTML escapes text so it renders literally when inserted as HTML.
// Escaping already escaped text escapes it again.
func (s *Sanitizer) EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// IsValidURL reports whether url may be used as an href or src value.
// Denied protocols are checked first so that a dangerous scheme is never
// accepted by the relative path fallback.
func (s *Sanitizer) IsValidURL(url string) bool {
	u := strings.ToLower(strings.TrimSpace(url))
	if u == "" {
		return false
	}
	for _, p := range s.policy.DeniedProtocols {
		if strings.HasPrefix(u, p) {
			return false
		}
	}
	for _, p := range s.policy.AllowedProtocols {
		if strings.HasPrefix(u, p) {
			return true
		}
	}
	return !strings.Contains(u, ":")
}

// SanitizeHTML returns input reduced to the tags and attributes that level
// allows. Disallowed elements are replaced by their text content. At
// LevelNone the result contains no markup at all.
func (s *Sanitizer) SanitizeHTML(input string, level SecurityLevel) string {
	input = strings.ReplaceAll(input, schemeMark, "")
	if input == "" {
		return ""
	}

	if level == LevelNone {
		// Decode first so that applying LevelNone twice is stable.
		decoded := html.UnescapeString(s.stripDangerous(input, false))
		decoded = strings.ReplaceAll(decoded, schemeMark, "")
		return s.EscapeHTML(s.stripDangerous(decoded, false))
	}

	cleaned := s.stripDangerous(input, true)

	doc, err := html.Parse(strings.NewReader(cleaned))
	if err != nil {
		s.logger.Error().Err(err).Msg("parse html fragment")
		return s.EscapeHTML(cleaned)
	}
	body := findBody(doc)
	if body == nil {
		return ""
	}

	out := &html.Node{Type: html.ElementNode, Data: "body"}
	s.appendFiltered(out, body, level)

	var buf bytes.Buffer
	for c := out.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			s.logger.Error().Err(err).Msg("render sanitized html")
			return s.EscapeHTML(textContent(out))
		}
	}
	return buf.String()
}

// SanitizeReader reads HTML from r and sanitizes it at level.
func (s *Sanitizer) SanitizeReader(r io.Reader, level SecurityLevel) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read html: %w", err)
	}
	return s.SanitizeHTML(string(data), level), nil
}

// SanitizeText removes control characters, caps the length and escapes the
// result for use as HTML text.
func (s *Sanitizer) SanitizeText(input string) string {
	if input == "" {
		return ""
	}
	return s.EscapeHTML(s.clampText(input))
}

// StripTags removes every tag and returns the remaining text, still
// entity-escaped.
func (s *Sanitizer) StripTags(input string) string {
	return s.strict.Sanitize(input)
}

func (s *Sanitizer) clampText(input string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, input)
	if utf8.RuneCountInString(cleaned) > s.maxTextLength {
		cleaned = string([]rune(cleaned)[:s.maxTextLength]) + truncationMarker
	}
	return cleaned
}

// stripDangerous removes pattern matches until none remain, so fragments
// split around an inner match cannot rejoin into a new one. With mark set,
// URL scheme matches are replaced by schemeMark instead of removed.
func (s *Sanitizer) stripDangerous(input string, mark bool) string {
	for {
		changed := false
		for _, p := range s.policy.DangerousPatterns {
			matches := p.Expr.FindAllStringIndex(input, -1)
			if len(matches) == 0 {
				continue
			}
			s.logger.Warn().
				Str("pattern", p.Name).
				Int("matches", len(matches)).
				Msg("dangerous content detected and removed")
			s.metrics.patternRemoved(p.Name, len(matches))
			repl := ""
			if mark && p.URLScheme {
				repl = schemeMark
			}
			input = p.Expr.ReplaceAllLiteralString(input, repl)
			changed = true
		}
		if !changed {
			return input
		}
	}
}

// appendFiltered appends the filtered copies of src's children to dst.
func (s *Sanitizer) appendFiltered(dst, src *html.Node, level SecurityLevel) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if n := s.filterNode(c, level); n != nil {
			dst.AppendChild(n)
		}
	}
}

func (s *Sanitizer) filterNode(n *html.Node, level SecurityLevel) *html.Node {
	switch n.Type {
	case html.TextNode:
		return &html.Node{Type: html.TextNode, Data: unmark(n.Data)}

	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if n.Namespace != "" || !s.policy.tagAllowed(level, tag) {
			s.metrics.elementUnwrapped(level)
			return &html.Node{Type: html.TextNode, Data: unmark(textContent(n))}
		}
		out := &html.Node{
			Type:     html.ElementNode,
			DataAtom: n.DataAtom,
			Data:     tag,
			Attr:     s.filterAttrs(tag, n.Attr),
		}
		s.appendFiltered(out, n, level)
		return out
	}
	// comments, doctypes
	return nil
}

func (s *Sanitizer) filterAttrs(tag string, attrs []html.Attribute) []html.Attribute {
	var out []html.Attribute
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if a.Namespace != "" || !s.policy.attrAllowed(tag, key) {
			s.metrics.attributeStripped(reasonNotAllowed)
			continue
		}
		isURL := key == "href" || key == "src"
		if isURL && (strings.Contains(a.Val, schemeMark) || !s.IsValidURL(a.Val)) {
			s.metrics.attributeStripped(reasonUnsafeURL)
			continue
		}
		out = append(out, html.Attribute{Key: key, Val: unmark(a.Val)})
	}
	return out
}

func unmark(s string) string {
	return strings.ReplaceAll(s, schemeMark, "")
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func findBody(doc *html.Node) *html.Node {
	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.Data == "body" {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if r := find(c); r != nil {
				return r
			}
		}
		return nil
	}
	return find(doc)
}
