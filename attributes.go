package quillhtml

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// tagSpec is a resolved element: its name and attributes in emission order.
type tagSpec struct {
	tag   string
	attrs []TagAttribute
}

// resolveAttribute maps a formatting attribute to its element. It reports
// false for names without a tag definition.
func resolveAttribute(name string, value any, opts *Options) (tagSpec, bool) {
	def, ok := opts.Attributes[name]
	if !ok || def.Tag == "" {
		return tagSpec{}, false
	}
	spec := tagSpec{tag: def.Tag}
	if len(def.Attributes) > 0 || def.Value != "" {
		spec.attrs = make([]TagAttribute, 0, len(def.Attributes)+1)
		spec.attrs = append(spec.attrs, def.Attributes...)
	}
	if def.Value != "" {
		v := attributeString(value)
		set := false
		for i := range spec.attrs {
			if spec.attrs[i].Name == def.Value {
				spec.attrs[i].Value = v
				set = true
			}
		}
		if !set {
			spec.attrs = append(spec.attrs, TagAttribute{Name: def.Value, Value: v})
		}
	}
	return spec, true
}

func attributeString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func openTag(spec tagSpec, escape bool) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(spec.tag)
	for _, attr := range spec.attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		if escape {
			b.WriteString(html.EscapeString(attr.Value))
		} else {
			b.WriteString(attr.Value)
		}
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

func closeTag(tag string) string {
	return "</" + tag + ">"
}

func lineBreakTag(tag string) string {
	return "<" + tag + " />"
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
