package domsanitizer_test

import (
	"fmt"

	"github.com/njchilds90/domsanitizer"
)

func ExampleSanitizer_SanitizeHTML() {
	s := domsanitizer.New()
	input := `<b>Hello</b> <script>alert('xss')</script><a href="javascript:alert(1)">x</a>`
	fmt.Println(s.SanitizeHTML(input, domsanitizer.LevelStandard))
	// Output: <b>Hello</b> <a>x</a>
}

func ExampleSanitizer_SanitizeHTML_minimal() {
	s := domsanitizer.New()
	fmt.Println(s.SanitizeHTML(`<p>Use <code>make</code> <em>now</em></p>`, domsanitizer.LevelMinimal))
	// Output: Use make now
}

func ExampleSanitizer_SanitizeHTML_none() {
	s := domsanitizer.New()
	fmt.Println(s.SanitizeHTML(`<b>bold</b>`, domsanitizer.LevelNone))
	// Output: &lt;b&gt;bold&lt;/b&gt;
}

func ExampleSanitizer_SanitizeText() {
	s := domsanitizer.New()
	fmt.Println(s.SanitizeText("model \x00<llama3>"))
	// Output: model &lt;llama3&gt;
}

func ExampleSanitizer_SanitizeJSONBytes() {
	s := domsanitizer.New()
	out, _ := s.SanitizeJSONBytes([]byte(`{"prompt":"<i>hi</i>","temperature":0.7}`))
	fmt.Println(string(out))
	// Output: {"prompt":"&lt;i&gt;hi&lt;/i&gt;","temperature":0.7}
}

func ExampleSanitizer_IsValidURL() {
	s := domsanitizer.New()
	fmt.Println(s.IsValidURL("https://example.com"), s.IsValidURL("JavaScript:alert(1)"))
	// Output: true false
}
