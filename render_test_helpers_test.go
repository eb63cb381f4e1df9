package quillhtml

import (
	"io"
	"os"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func renderJSON(t *testing.T, src string, opts ...RenderOption) string {
	t.Helper()
	return NewRenderer(opts...).RenderJSON([]byte(src))
}

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}

// assertBalanced fails unless every start tag in markup is closed in
// reverse order.
func assertBalanced(t *testing.T, markup string) {
	t.Helper()
	z := html.NewTokenizer(strings.NewReader(markup))
	var stack []string
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				t.Fatalf("tokenize %q: %v", markup, z.Err())
			}
			if len(stack) > 0 {
				t.Fatalf("unclosed tags %v in %q", stack, markup)
			}
			return
		case html.StartTagToken:
			name, _ := z.TagName()
			stack = append(stack, string(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(stack) == 0 {
				t.Fatalf("unexpected </%s> in %q", name, markup)
			}
			if top := stack[len(stack)-1]; top != string(name) {
				t.Fatalf("</%s> closes <%s> in %q", name, top, markup)
			}
			stack = stack[:len(stack)-1]
		}
	}
}
