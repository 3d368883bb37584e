package render

import "strings"

// assemble flattens the root frame into the final text. Empty lines are
// never indented and surrounding blank lines are dropped.
func (r *Renderer) assemble() string {
	var lines []string
	for _, e := range r.stack.root().entries {
		if e.indent == rawIndent {
			lines = append(lines, splitLines(e.text)...)
			continue
		}
		pad := strings.Repeat(" ", e.indent)
		for _, l := range e.lines {
			if l == "" {
				lines = append(lines, "")
				continue
			}
			lines = append(lines, pad+l)
		}
	}

	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	nl := r.opts.newline()
	return strings.Join(lines, nl) + nl
}
