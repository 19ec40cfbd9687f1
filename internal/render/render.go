package render

import "strings"

// Markdown renders content for the terminal with a cached renderer.
func Markdown(content string, opts Options) (string, error) {
	opts = opts.normalized()

	tr, err := renderers.acquire(opts)
	if err != nil {
		return "", err
	}
	defer renderers.release(opts, tr)

	return tr.Render(content)
}

// MarkdownWithWidth renders content with the default options at width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

// MarkdownOrPlain renders content, falling back to the raw text when the
// renderer fails. Surrounding blank lines added by glamour are trimmed.
func MarkdownOrPlain(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
