package render

import "strings"

// LabelKey names a localizable label.
type LabelKey string

const (
	LabelAttention      LabelKey = "attention"
	LabelCaution        LabelKey = "caution"
	LabelDanger         LabelKey = "danger"
	LabelError          LabelKey = "error"
	LabelHint           LabelKey = "hint"
	LabelImportant      LabelKey = "important"
	LabelNote           LabelKey = "note"
	LabelSeeAlso        LabelKey = "seealso"
	LabelTip            LabelKey = "tip"
	LabelWarning        LabelKey = "warning"
	LabelVersionAdded   LabelKey = "versionadded"
	LabelVersionChanged LabelKey = "versionchanged"
	LabelDeprecated     LabelKey = "deprecated"
)

// Labels maps label keys to localized strings. Version labels contain a
// single %s that is replaced by the version.
type Labels map[LabelKey]string

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		LabelAttention:      "Attention",
		LabelCaution:        "Caution",
		LabelDanger:         "Danger",
		LabelError:          "Error",
		LabelHint:           "Hint",
		LabelImportant:      "Important",
		LabelNote:           "Note",
		LabelSeeAlso:        "See also",
		LabelTip:            "Tip",
		LabelWarning:        "Warning",
		LabelVersionAdded:   "New in version %s",
		LabelVersionChanged: "Changed in version %s",
		LabelDeprecated:     "Deprecated since version %s",
	}
}

// Get returns the label for key, falling back to the English default and
// then to the key itself.
func (l Labels) Get(key LabelKey) string {
	if s, ok := l[key]; ok && s != "" {
		return s
	}
	if s, ok := DefaultLabels()[key]; ok {
		return s
	}
	return string(key)
}

// Version formats a version-change label.
func (l Labels) Version(key LabelKey, version string) string {
	return strings.Replace(l.Get(key), "%s", version, 1)
}

// Merge returns a copy of l with the entries of overrides applied.
func (l Labels) Merge(overrides map[string]string) Labels {
	out := make(Labels, len(l)+len(overrides))
	for k, v := range l {
		out[k] = v
	}
	for k, v := range overrides {
		out[LabelKey(k)] = v
	}
	return out
}
