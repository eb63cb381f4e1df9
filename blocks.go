package quillhtml

// blockElements lists the tags treated as block level by block detection,
// in addition to the configured block tag.
var blockElements = map[string]bool{
	"address":    true,
	"article":    true,
	"aside":      true,
	"blockquote": true,
	"div":        true,
	"footer":     true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"header":     true,
	"li":         true,
	"ol":         true,
	"p":          true,
	"pre":        true,
	"section":    true,
	"ul":         true,
}

func isBlockElement(tag, block string) bool {
	return tag == block || blockElements[tag]
}

// normalizeBlocks opens a block before the first item and closes one after
// the last. Both markers go outermost so the block encloses the item's
// inline tags. With detect set, the wrap is skipped only when the first item
// opens a block element and the last item closes one; the two sides are
// always added or skipped together so the output stays balanced.
func normalizeBlocks(items []item, opts *Options, detect bool) {
	if len(items) == 0 {
		return
	}
	first := &items[0]
	last := &items[len(items)-1]
	if detect && first.opensBlock(opts.Block) && last.closesBlock(opts.Block) {
		return
	}
	first.markers = append([]marker{{tag: opts.Block, open: "<" + opts.Block + ">"}}, first.markers...)
	last.markers = append([]marker{{tag: opts.Block, close: closeTag(opts.Block)}}, last.markers...)
}

func (it *item) opensBlock(block string) bool {
	for _, m := range it.markers {
		if m.open != "" && isBlockElement(m.tag, block) {
			return true
		}
	}
	return false
}

func (it *item) closesBlock(block string) bool {
	for _, m := range it.markers {
		if m.close != "" && isBlockElement(m.tag, block) {
			return true
		}
	}
	return false
}
