package quillhtml

import (
	"strings"

	"go.uber.org/zap"
)

// marker is one side, both sides or neither side of an element around an
// item. An empty open means the element was opened by an earlier item; an
// empty close means a later item closes it.
type marker struct {
	tag   string
	open  string
	close string
}

// item is the rendered form of one insert operation.
type item struct {
	content string
	markers []marker
}

// blankChars are the characters an insert may consist of and still count as
// empty. Other Unicode spaces, such as the no-break space Quill emits for
// &nbsp;, are content.
const blankChars = " \t\n\r\x00\x0b"

// transform builds one item per operation and applies block normalization.
// It appends to items and returns the extended slice.
func transform(items []item, d Delta, cfg *renderConfig) []item {
	if !d.HasOps {
		cfg.log.Debug("delta has no ops collection")
		return items
	}
	opts := &cfg.options
	start := len(items)
	for i, op := range d.Ops {
		var it item
		for _, attr := range op.Attributes {
			if !cfg.validator.Valid(attr.Name, attr.Value) {
				cfg.log.Debug("attribute rejected",
					zap.Int("op", i),
					zap.String("attribute", attr.Name),
					zap.Any("value", attr.Value))
				continue
			}
			spec, ok := resolveAttribute(attr.Name, attr.Value, opts)
			if !ok {
				cfg.log.Debug("attribute not mapped", zap.Int("op", i), zap.String("attribute", attr.Name))
				continue
			}
			it.markers = append(it.markers, marker{
				tag:   spec.tag,
				open:  openTag(spec, !cfg.rawValues),
				close: closeTag(spec.tag),
			})
		}
		if strings.Trim(op.Insert, blankChars) != "" {
			text := op.Insert
			if !cfg.rawValues {
				text = escapeText(text)
			}
			text, splits := segmentNewlines(text, opts)
			if splits > 0 {
				cfg.log.Debug("paragraph boundaries", zap.Int("op", i), zap.Int("count", splits))
			}
			it.content = text
		}
		if i == len(d.Ops)-1 {
			it.content = trimTrailingBreaks(it.content, opts.Newline)
		}
		items = append(items, it)
	}
	if len(items) > start {
		normalizeBlocks(items[start:], opts, cfg.detectBlocks)
	}
	return items
}
