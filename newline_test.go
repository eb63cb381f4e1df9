package quillhtml

import "testing"

func TestSegmentNewlines(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	tests := []struct {
		name   string
		src    string
		want   string
		splits int
	}{
		{name: "no newline", src: "Hello world", want: "Hello world"},
		{name: "single", src: "Hello\nworld", want: "Hello<br />\nworld"},
		{name: "double", src: "Hello\n\nworld", want: "Hello</p><p>world", splits: 1},
		{name: "triple with indent", src: "Hello\n\n\n   world", want: "Hello</p><p>world", splits: 1},
		{name: "mixed", src: "a\nb\n\nc\nd\n\ne", want: "a<br />\nb</p><p>c<br />\nd</p><p>e", splits: 2},
		{name: "trailing single", src: "Hello\n", want: "Hello<br />\n"},
		{name: "space before newline", src: "a \nb", want: "a <br />\nb"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, splits := segmentNewlines(tc.src, &opts)
			if got != tc.want {
				t.Fatalf("segmentNewlines(%q) = %q, want %q", tc.src, got, tc.want)
			}
			if splits != tc.splits {
				t.Fatalf("segmentNewlines(%q) splits = %d, want %d", tc.src, splits, tc.splits)
			}
		})
	}
}

func TestSegmentNewlinesCustomTags(t *testing.T) {
	opts := Options{Block: "div", Newline: "hr"}
	got, splits := segmentNewlines("a\nb\n\nc", &opts)
	if want := "a<hr />\nb</div><div>c"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if splits != 1 {
		t.Fatalf("splits = %d, want 1", splits)
	}
}

func TestTrimTrailingBreaks(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{src: "Hello", want: "Hello"},
		{src: "Hello<br />\n", want: "Hello"},
		{src: "Hello<br />\n<br />\n", want: "Hello"},
		{src: "Hello\n", want: "Hello"},
		{src: "Hello<br />", want: "Hello"},
		{src: "bar", want: "bar"},
		{src: "Hello</p><p>", want: "Hello</p><p>"},
		{src: "", want: ""},
	}
	for _, tc := range tests {
		if got := trimTrailingBreaks(tc.src, "br"); got != tc.want {
			t.Fatalf("trimTrailingBreaks(%q) = %q, want %q", tc.src, got, tc.want)
		}
	}
}
