package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHTMLCommand(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		expected string
	}{
		{
			name:     "standard keeps paragraphs",
			stdin:    "<p>Hi <script>x</script><b>there</b></p>",
			args:     []string{"html", "--level", "standard"},
			expected: "<p>Hi <b>there</b></p>\n",
		},
		{
			name:     "default level is minimal",
			stdin:    "<p>Hi <b>there</b></p>",
			args:     []string{"html"},
			expected: "Hi there\n",
		},
		{
			name:     "none escapes",
			stdin:    "<b>x</b>",
			args:     []string{"html", "-l", "none"},
			expected: "&lt;b&gt;x&lt;/b&gt;\n",
		},
		{
			name:     "dash reads stdin",
			stdin:    "<i>x</i>",
			args:     []string{"html", "-"},
			expected: "<i>x</i>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, out)
			}
		})
	}
}

func TestHTMLCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reply.html")
	if err := os.WriteFile(path, []byte(`<a href="javascript:alert(1)">x</a>`), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "", "html", "--level", "standard", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<a>x</a>\n" {
		t.Errorf("expected unsafe href to be dropped, got %q", out)
	}
}

func TestHTMLCommandErrors(t *testing.T) {
	if _, _, err := execute(t, "", "html", "--level", "paranoid"); err == nil || !strings.Contains(err.Error(), "unknown security level") {
		t.Errorf("expected unknown level error, got %v", err)
	}
	if _, _, err := execute(t, "", "html", filepath.Join(t.TempDir(), "missing.html")); err == nil || !strings.Contains(err.Error(), "read input") {
		t.Errorf("expected read error, got %v", err)
	}
	if _, _, err := execute(t, "", "html", "a", "b"); err == nil {
		t.Error("expected error for two file arguments")
	}
}

func TestHTMLCommandLogsRemovals(t *testing.T) {
	_, stderr, err := execute(t, "<b onclick=x>y</b>", "html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr, "dangerous content detected and removed") {
		t.Errorf("expected warning on stderr, got:\n%s", stderr)
	}
	if !strings.Contains(stderr, `"pattern":"event-handler"`) {
		t.Errorf("expected pattern name in log, got:\n%s", stderr)
	}
}

func TestTextCommand(t *testing.T) {
	out, _, err := execute(t, "a\x00b<i>\n", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ab&lt;i&gt;\n" {
		t.Errorf("expected %q, got %q", "ab&lt;i&gt;\n", out)
	}
}

func TestTextCommandMaxLengthFromEnv(t *testing.T) {
	t.Setenv("DOMSANITIZE_MAX_TEXT_LENGTH", "3")

	out, _, err := execute(t, "abcdef", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "abc...\n" {
		t.Errorf("expected truncated text, got %q", out)
	}
}

func TestJSONCommand(t *testing.T) {
	in := `{"b":"<x>","a":[1,"<y>"],"<k>":null}`

	out, _, err := execute(t, in, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `{"b":"&lt;x&gt;","a":[1,"&lt;y&gt;"],"&lt;k&gt;":null}` + "\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestJSONCommandIndent(t *testing.T) {
	out, _, err := execute(t, `{"a":"<b>"}`, "json", "--indent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "{\n  \"a\": \"&lt;b&gt;\"\n}\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestJSONCommandMalformed(t *testing.T) {
	_, _, err := execute(t, `{"a":`, "json")
	if err == nil || !strings.Contains(err.Error(), "decode json") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestStripCommand(t *testing.T) {
	out, _, err := execute(t, "<p>Hello <b>world</b></p>", "strip")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello world\n" {
		t.Errorf("expected %q, got %q", "Hello world\n", out)
	}
}
