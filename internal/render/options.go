package render

import "runtime"

// Newline conventions accepted by Options.Newlines.
const (
	NewlinesUnix    = "unix"
	NewlinesWindows = "windows"
	NewlinesNative  = "native"
)

// Defaults used when an Options field is left zero.
const (
	DefaultIndent       = 3
	DefaultMaxWidth     = 70
	DefaultSectionChars = "=-^\"~+*"
)

// fieldNameWidth is the column a field body starts at when the name fits.
const fieldNameWidth = 16

// Options configure a Renderer.
type Options struct {
	// Newlines is "unix", "windows" or "native". Empty means unix.
	Newlines string
	// Indent is the width of one nesting level.
	Indent int
	// SectionChars are the underline characters by section depth; deeper
	// sections cycle through them.
	SectionChars string
	// PreserveCodeBlockFlags keeps the :linenos: flag on code blocks.
	PreserveCodeBlockFlags bool
	// MaxWidth bounds wrapped text and transitions.
	MaxWidth int
	// WrapParagraphs fills paragraph text to MaxWidth instead of keeping
	// the source line breaks.
	WrapParagraphs bool
	// Labels localize admonition and version-change labels.
	Labels Labels
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Newlines:     NewlinesUnix,
		Indent:       DefaultIndent,
		SectionChars: DefaultSectionChars,
		MaxWidth:     DefaultMaxWidth,
		Labels:       DefaultLabels(),
	}
}

// withDefaults fills zero fields.
func (o Options) withDefaults() Options {
	if o.Indent <= 0 {
		o.Indent = DefaultIndent
	}
	if o.SectionChars == "" {
		o.SectionChars = DefaultSectionChars
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.Labels == nil {
		o.Labels = DefaultLabels()
	}
	return o
}

// newline resolves the Newlines setting to the line terminator.
func (o Options) newline() string {
	switch o.Newlines {
	case NewlinesWindows:
		return "\r\n"
	case NewlinesNative:
		if runtime.GOOS == "windows" {
			return "\r\n"
		}
		return "\n"
	default:
		return "\n"
	}
}
