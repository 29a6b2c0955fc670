package telegram

import (
	"strings"
	"testing"
)

func TestSplitMessageShortPassthrough(t *testing.T) {
	parts := SplitMessage("hello", 100)
	if len(parts) != 1 || parts[0] != "hello" {
		t.Fatalf("got %v, want single unchanged part", parts)
	}
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	text := strings.Repeat("line of sample text\n", 20)
	parts := SplitMessage(text, 100)

	if len(parts) < 2 {
		t.Fatalf("got %d parts, want a split", len(parts))
	}
	for i, p := range parts {
		if len([]rune(p)) > 100 {
			t.Errorf("part %d is %d runes, over the limit", i, len([]rune(p)))
		}
	}
	if got := strings.Join(parts, ""); got != text {
		t.Error("joined parts do not reproduce the original text")
	}
	if !strings.HasSuffix(parts[0], "\n") {
		t.Errorf("first part %q did not split at a newline", parts[0])
	}
}

func TestFixMarkdownClosesCodeBlock(t *testing.T) {
	got := FixMarkdown("```go\nfunc main() {}")
	if strings.Count(got, "```")%2 != 0 {
		t.Fatalf("code block still unbalanced: %q", got)
	}
}

func TestFixMarkdownClosesInlineCode(t *testing.T) {
	got := FixMarkdown("use `copper oxychloride")
	if strings.Count(got, "`")%2 != 0 {
		t.Fatalf("inline code still unbalanced: %q", got)
	}
}

func TestFixMarkdownLeavesBalancedTextAlone(t *testing.T) {
	text := "plain text with `code` and a ```block```"
	if got := FixMarkdown(text); got != text {
		t.Fatalf("balanced text changed: %q", got)
	}
}
