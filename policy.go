package domsanitizer

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// SecurityLevel selects how much markup SanitizeHTML lets through.
type SecurityLevel int

const (
	// LevelNone permits no markup at all; everything is escaped.
	LevelNone SecurityLevel = iota
	// LevelMinimal permits inline formatting only.
	LevelMinimal
	// LevelStandard permits inline formatting plus blocks, lists and links.
	LevelStandard
)

// String returns the level's config/flag name.
func (l SecurityLevel) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelMinimal:
		return "minimal"
	case LevelStandard:
		return "standard"
	}
	return fmt.Sprintf("SecurityLevel(%d)", int(l))
}

// ParseLevel maps a level name to a SecurityLevel. Unknown names yield
// LevelMinimal together with an error so callers that ignore the error still
// get the conservative default.
func ParseLevel(name string) (SecurityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return LevelNone, nil
	case "minimal", "":
		return LevelMinimal, nil
	case "standard":
		return LevelStandard, nil
	}
	return LevelMinimal, fmt.Errorf("unknown security level %q", name)
}

// DangerousPattern is a named expression removed from HTML input before any
// tree filtering happens.
type DangerousPattern struct {
	Name string
	Expr *regexp.Regexp
	// URLScheme marks scheme patterns. An href or src value that had such a
	// match removed is dropped rather than kept as a relative path.
	URLScheme bool
}

// Policy holds the allow-lists and pattern set shared by every sanitizer
// call. A Policy must not be mutated once handed to New.
type Policy struct {
	// AllowedTags maps each level to the lower-case tag names it keeps.
	AllowedTags map[SecurityLevel]map[string]struct{}

	// AllowedAttributes maps a tag name to the attributes kept on it.
	// Tags absent from the map keep no attributes.
	AllowedAttributes map[string]map[string]struct{}

	// DangerousPatterns are removed in order, regardless of level.
	DangerousPatterns []DangerousPattern

	// DeniedProtocols are rejected by IsValidURL before anything else.
	DeniedProtocols []string

	// AllowedProtocols are accepted URL prefixes. "#" and "/" cover
	// fragments and relative paths.
	AllowedProtocols []string

	// MaxTextLength caps SanitizeText output, in runes, before escaping.
	MaxTextLength int
}

// DefaultMaxTextLength is the SanitizeText cap used by DefaultPolicy.
const DefaultMaxTextLength = 10000

const truncationMarker = "..."

var (
	minimalTags  = []string{"b", "i", "em", "strong", "code", "br"}
	standardTags = append(slices.Clone(minimalTags), "p", "div", "span", "a", "ul", "ol", "li")
)

// DefaultPolicy returns the policy used by the browser extension: inline
// formatting at minimal, blocks/lists/links at standard, and class/href
// attributes only where they are needed.
func DefaultPolicy() *Policy {
	return &Policy{
		AllowedTags: map[SecurityLevel]map[string]struct{}{
			LevelNone:     {},
			LevelMinimal:  toSet(minimalTags),
			LevelStandard: toSet(standardTags),
		},
		AllowedAttributes: map[string]map[string]struct{}{
			"a":    toSet([]string{"href", "title", "target"}),
			"span": toSet([]string{"class"}),
			"div":  toSet([]string{"class"}),
		},
		DangerousPatterns: []DangerousPattern{
			{Name: "script", Expr: regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script>`)},
			{Name: "iframe", Expr: regexp.MustCompile(`(?i)<iframe[^>]*>[\s\S]*?</iframe>`)},
			{Name: "object", Expr: regexp.MustCompile(`(?i)<object[^>]*>[\s\S]*?</object>`)},
			{Name: "embed", Expr: regexp.MustCompile(`(?i)<embed[^>]*>`)},
			{Name: "link", Expr: regexp.MustCompile(`(?i)<link[^>]*>`)},
			{Name: "javascript", Expr: regexp.MustCompile(`(?i)javascript:`), URLScheme: true},
			{Name: "event-handler", Expr: regexp.MustCompile(`(?i)on\w+\s*=`)},
			{Name: "data-html", Expr: regexp.MustCompile(`(?i)data:text/html`), URLScheme: true},
			{Name: "vbscript", Expr: regexp.MustCompile(`(?i)vbscript:`), URLScheme: true},
		},
		DeniedProtocols:  []string{"javascript:", "data:", "vbscript:", "file:"},
		AllowedProtocols: []string{"http://", "https://", "mailto:", "#", "/"},
		MaxTextLength:    DefaultMaxTextLength,
	}
}

// Tags returns the sorted tag names allowed at level. Unknown levels report
// the minimal list, matching SanitizeHTML.
func (p *Policy) Tags(level SecurityLevel) []string {
	tags := lo.Keys(p.tagSet(level))
	slices.Sort(tags)
	return tags
}

// Attributes returns the sorted attribute names allowed on tag.
func (p *Policy) Attributes(tag string) []string {
	attrs := lo.Keys(p.AllowedAttributes[strings.ToLower(tag)])
	slices.Sort(attrs)
	return attrs
}

func (p *Policy) tagSet(level SecurityLevel) map[string]struct{} {
	if set, ok := p.AllowedTags[level]; ok {
		return set
	}
	return p.AllowedTags[LevelMinimal]
}

func (p *Policy) tagAllowed(level SecurityLevel, tag string) bool {
	_, ok := p.tagSet(level)[tag]
	return ok
}

func (p *Policy) attrAllowed(tag, attr string) bool {
	_, ok := p.AllowedAttributes[tag][attr]
	return ok
}

func toSet(s []string) map[string]struct{} {
	return lo.SliceToMap(s, func(v string) (string, struct{}) {
		return strings.ToLower(v), struct{}{}
	})
}
