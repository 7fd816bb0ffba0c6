package domsanitizer_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/njchilds90/domsanitizer"
)

const page = `<html><body><div id="out">old</div><p id="para">text <b>bold</b></p></body></html>`

func newPage(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestSetInnerHTML(t *testing.T) {
	s := domsanitizer.New()
	doc := newPage(t)
	out := doc.Find("#out")

	err := s.SetInnerHTML(out, `<p>Hi <b onclick="x()">there</b><script>alert(1)</script></p>`, domsanitizer.LevelStandard)
	require.NoError(t, err)

	got, err := out.Html()
	require.NoError(t, err)
	assert.Equal(t, `<p>Hi <b>there</b></p>`, got)
	assert.Equal(t, 0, doc.Find("script").Length())
}

func TestSetInnerHTML_LevelNone(t *testing.T) {
	s := domsanitizer.New()
	doc := newPage(t)
	out := doc.Find("#out")

	require.NoError(t, s.SetInnerHTML(out, `<b>x</b>`, domsanitizer.LevelNone))
	assert.Equal(t, 0, out.Find("b").Length())
	assert.Equal(t, "<b>x</b>", out.Text())
}

func TestSetTextContent(t *testing.T) {
	s := domsanitizer.New()
	doc := newPage(t)
	out := doc.Find("#out")

	require.NoError(t, s.SetTextContent(out, "a\x00<i>b</i>"))
	assert.Equal(t, 0, out.Find("i").Length())
	assert.Equal(t, s.SanitizeText("a\x00<i>b</i>"), out.Text())
}

func TestDOMHelpers_InvalidArgument(t *testing.T) {
	s := domsanitizer.New()
	doc := newPage(t)

	tests := []struct {
		name string
		sel  *goquery.Selection
	}{
		{"nil selection", nil},
		{"empty selection", doc.Find("#missing")},
		{"text node", doc.Find("#para").Contents().First()},
		{"element mixed with text", doc.Find("#para").Contents()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := doc.Find("body").Html()
			require.NoError(t, err)

			err = s.SetInnerHTML(tt.sel, "<b>x</b>", domsanitizer.LevelMinimal)
			assert.ErrorIs(t, err, domsanitizer.ErrInvalidArgument)
			err = s.SetTextContent(tt.sel, "x")
			assert.ErrorIs(t, err, domsanitizer.ErrInvalidArgument)

			after, err := doc.Find("body").Html()
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestSafeTextNode(t *testing.T) {
	s := domsanitizer.New()
	n := s.SafeTextNode("<script>\x07")
	assert.Equal(t, html.TextNode, n.Type)
	assert.Equal(t, "&lt;script&gt;", n.Data)
	assert.Nil(t, n.Parent)
}
