// Package quillhtml renders Quill delta documents to HTML.
//
// A delta is an ordered list of insert operations, each carrying text and an
// optional set of formatting attributes. The renderer maps every attribute to
// a tag, turns newlines into block and line-break markup, wraps the document
// in a block element and emits opening tags in order and closing tags in
// reverse order so the result nests correctly.
//
// Core properties:
//   - One-way transform: delta JSON in, HTML out
//   - Lenient: malformed deltas degrade to empty output instead of errors
//   - Attribute order in the delta JSON is preserved when nesting tags
//   - No state survives between render calls
//
// Example:
//
//	html := quillhtml.RenderString([]byte(`{"ops":[
//		{"insert":"Hello ","attributes":{"bold":true}},
//		{"insert":"world"}
//	]}`))
//	fmt.Println(html) // <p><strong>Hello </strong>world</p>
//
// A paragraph boundary inside a formatted insert splits the block but not the
// inline tags, so such input yields interleaved markup such as
// <p><strong>a</p><p>b</strong></p>. Editors emit boundaries in unformatted
// inserts, where the output nests correctly.
//
// The renderer can be customized using RenderOptions such as WithAttribute,
// WithBlock and WithNewline.
package quillhtml
