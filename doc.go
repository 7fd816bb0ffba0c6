// Package domsanitizer neutralizes untrusted text, HTML and JSON before it
// is inserted into a page.
//
// # Overview
//
// A [Sanitizer] applies a [Policy] made of three read-only tables: the tags
// allowed at each [SecurityLevel], the attributes allowed on each tag, and
// an ordered set of dangerous patterns. One Sanitizer is built at startup
// with [New] and shared by every caller.
//
// # Security levels
//
//   - [LevelNone] escapes everything; no markup survives.
//   - [LevelMinimal] keeps inline formatting: b, i, em, strong, code, br.
//   - [LevelStandard] adds p, div, span, a, ul, ol, li.
//
// Use LevelStandard for instructional markup returned by the server,
// LevelMinimal for inline formatting, LevelNone for plain user text, and
// [Sanitizer.SanitizeText] for plain strings.
//
// # How HTML is filtered
//
// [Sanitizer.SanitizeHTML] first removes dangerous patterns (script,
// iframe and object elements, embed and link tags, javascript:, vbscript:
// and data:text/html URLs, on*= handlers). It then parses the remainder with
// golang.org/x/net/html and builds a new tree: disallowed elements are
// replaced by their text content, disallowed attributes are dropped, and
// href/src values must pass [Sanitizer.IsValidURL].
//
// The pattern pass is a coarse first filter. The allow-list walk over the
// parsed tree is what guarantees the output; the pattern pass can also
// remove harmless text that happens to match, such as "tone =" in prose.
//
// # JSON
//
// [Sanitizer.SanitizeJSON] sanitizes every string, including object keys,
// in a decoded JSON value. [DecodeJSON] and [Sanitizer.SanitizeJSONBytes]
// keep object keys in document order.
//
// # Thread Safety
//
// A Sanitizer is safe for concurrent use. Policies must not be mutated
// after they are passed to New.
//
// # Example
//
//	s := domsanitizer.New()
//	clean := s.SanitizeHTML(serverReply, domsanitizer.LevelStandard)
package domsanitizer
