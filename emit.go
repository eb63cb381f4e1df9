package quillhtml

import "bytes"

// emit writes each item as its opening tags in order, its content, then
// its closing tags in reverse order.
func emit(buf *bytes.Buffer, items []item) {
	for i := range items {
		it := &items[i]
		for _, m := range it.markers {
			if m.open != "" {
				buf.WriteString(m.open)
			}
		}
		buf.WriteString(it.content)
		for j := len(it.markers) - 1; j >= 0; j-- {
			if c := it.markers[j].close; c != "" {
				buf.WriteString(c)
			}
		}
	}
}
