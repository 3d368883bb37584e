package render

import (
	"strings"

	"github.com/pkg/errors"
)

// rawIndent tags an entry as unformatted text still waiting to be merged.
const rawIndent = -1

// entry is either a raw text span (indent == rawIndent) or a block of
// already formatted lines with an indent relative to its frame.
type entry struct {
	indent int
	text   string
	lines  []string
}

// frame is one level of deferred output.
type frame struct {
	indent  int
	entries []entry
}

// blankEnd terminates a block with one empty line.
var blankEnd = []string{""}

// popOpts controls how a frame is merged into its parent.
type popOpts struct {
	wrap  bool     // word-wrap raw spans instead of splitting on newlines
	end   []string // lines appended after each merged raw run
	first *string  // prefix spliced onto the first resulting line
}

func withFirst(prefix string) *string { return &prefix }

// stateStack holds the frames of a render. The bottom frame is never
// popped.
type stateStack struct {
	frames   []*frame
	maxWidth int
}

func newStateStack(maxWidth int) *stateStack {
	return &stateStack{
		frames:   []*frame{{indent: 0}},
		maxWidth: maxWidth,
	}
}

func (s *stateStack) push(indent int) {
	s.frames = append(s.frames, &frame{indent: indent})
}

func (s *stateStack) top() *frame {
	return s.frames[len(s.frames)-1]
}

func (s *stateStack) root() *frame {
	return s.frames[0]
}

// depth is the number of frames above the root.
func (s *stateStack) depth() int {
	return len(s.frames) - 1
}

// cumulativeIndent is the sum of the indents of every open frame.
func (s *stateStack) cumulativeIndent() int {
	total := 0
	for _, f := range s.frames {
		total += f.indent
	}
	return total
}

func (s *stateStack) appendRaw(text string) {
	f := s.top()
	f.entries = append(f.entries, entry{indent: rawIndent, text: text})
}

func (s *stateStack) appendBlock(indent int, lines []string) {
	f := s.top()
	f.entries = append(f.entries, entry{indent: indent, lines: lines})
}

// take removes the top frame and returns it without merging it anywhere.
func (s *stateStack) take() (*frame, error) {
	if len(s.frames) < 2 {
		return nil, errors.WithStack(ErrUnbalancedStack)
	}
	f := s.top()
	s.frames = s.frames[:len(s.frames)-1]
	return f, nil
}

// pop merges the top frame into the one below it.
func (s *stateStack) pop(opts popOpts) error {
	width := s.maxWidth - s.cumulativeIndent()
	f, err := s.take()
	if err != nil {
		return err
	}

	var result []entry
	var pending []string
	flush := func() {
		if len(pending) == 0 {
			return
		}
		joined := strings.Join(pending, "")
		var lines []string
		if opts.wrap {
			lines = wrapText(joined, width)
		} else {
			lines = splitLines(joined)
		}
		lines = append(lines, opts.end...)
		result = append(result, entry{indent: f.indent, lines: lines})
		pending = nil
	}
	for _, e := range f.entries {
		if e.indent == rawIndent {
			pending = append(pending, e.text)
			continue
		}
		flush()
		result = append(result, entry{indent: f.indent + e.indent, lines: e.lines})
	}
	flush()

	if opts.first != nil && len(result) > 0 && len(result[0].lines) > 0 {
		head := result[0]
		spliced := entry{
			indent: head.indent - f.indent,
			lines:  []string{*opts.first + head.lines[0]},
		}
		result[0] = entry{indent: head.indent, lines: head.lines[1:]}
		result = append([]entry{spliced}, result...)
	}

	parent := s.top()
	parent.entries = append(parent.entries, result...)
	return nil
}

// rawText concatenates the raw spans of a frame, ignoring formatted blocks.
func (f *frame) rawText() string {
	var b strings.Builder
	for _, e := range f.entries {
		if e.indent == rawIndent {
			b.WriteString(e.text)
		}
	}
	return b.String()
}

// flatText concatenates everything in a frame with line breaks removed.
func (f *frame) flatText() string {
	var b strings.Builder
	for _, e := range f.entries {
		if e.indent == rawIndent {
			b.WriteString(e.text)
			continue
		}
		for _, l := range e.lines {
			b.WriteString(l)
		}
	}
	return strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(b.String())
}

// splitLines splits on line breaks. A trailing break does not produce an
// extra empty line and the empty string yields no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
