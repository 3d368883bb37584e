package doctree

// Kind identifies the semantic role of a Node. The set is closed: the
// renderer switches over every value and treats anything else as an error.
type Kind int

const (
	KindInvalid Kind = iota

	// Structure.
	KindDocument
	KindSection
	KindTitle
	KindSubtitle
	KindTopic
	KindSidebar
	KindRubric
	KindCompound
	KindGlossary
	KindCentered
	KindHList
	KindHListCol
	KindAttribution
	KindTransition
	KindParagraph
	KindCompactParagraph
	KindBlockQuote
	KindLineBlock
	KindLine
	KindLiteralBlock
	KindDoctestBlock
	KindFigure
	KindCaption
	KindImage
	KindTarget
	KindComment
	KindIndex
	KindMeta
	KindRaw
	KindSubstitutionDefinition
	KindHighlightLang
	KindSystemMessage
	KindAcks

	// Lists.
	KindBulletList
	KindEnumeratedList
	KindListItem
	KindDefinitionList
	KindDefinitionListItem
	KindTerm
	KindTermSep
	KindClassifier
	KindDefinition
	KindFieldList
	KindField
	KindFieldName
	KindFieldBody
	KindOptionList
	KindOptionListItem
	KindOptionGroup
	KindOption
	KindOptionString
	KindOptionArgument
	KindDescription

	// Tables.
	KindTable
	KindTabularColSpec
	KindTGroup
	KindColSpec
	KindTHead
	KindTBody
	KindRow
	KindEntry

	// Notes and admonitions.
	KindFootnote
	KindCitation
	KindLabel
	KindAdmonition
	KindAttention
	KindCaution
	KindDanger
	KindError
	KindHint
	KindImportant
	KindNote
	KindTip
	KindWarning
	KindSeeAlso
	KindVersionModified

	// Object descriptions.
	KindDesc
	KindDescSignature
	KindDescName
	KindDescAddName
	KindDescType
	KindDescReturns
	KindDescParameterList
	KindDescParameter
	KindDescOptional
	KindDescAnnotation
	KindDescContent
	KindRefCount
	KindProductionList
	KindProduction

	// Inline.
	KindText
	KindEmphasis
	KindLiteralEmphasis
	KindStrong
	KindLiteral
	KindSubscript
	KindSuperscript
	KindAbbreviation
	KindTitleReference
	KindFootnoteReference
	KindCitationReference
	KindReference
	KindPendingXref
	KindDownloadReference
	KindGenerated
	KindInline
	KindProblematic

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:                "invalid",
	KindDocument:               "document",
	KindSection:                "section",
	KindTitle:                  "title",
	KindSubtitle:               "subtitle",
	KindTopic:                  "topic",
	KindSidebar:                "sidebar",
	KindRubric:                 "rubric",
	KindCompound:               "compound",
	KindGlossary:               "glossary",
	KindCentered:               "centered",
	KindHList:                  "hlist",
	KindHListCol:               "hlistcol",
	KindAttribution:            "attribution",
	KindTransition:             "transition",
	KindParagraph:              "paragraph",
	KindCompactParagraph:       "compact_paragraph",
	KindBlockQuote:             "block_quote",
	KindLineBlock:              "line_block",
	KindLine:                   "line",
	KindLiteralBlock:           "literal_block",
	KindDoctestBlock:           "doctest_block",
	KindFigure:                 "figure",
	KindCaption:                "caption",
	KindImage:                  "image",
	KindTarget:                 "target",
	KindComment:                "comment",
	KindIndex:                  "index",
	KindMeta:                   "meta",
	KindRaw:                    "raw",
	KindSubstitutionDefinition: "substitution_definition",
	KindHighlightLang:          "highlightlang",
	KindSystemMessage:          "system_message",
	KindAcks:                   "acks",
	KindBulletList:             "bullet_list",
	KindEnumeratedList:         "enumerated_list",
	KindListItem:               "list_item",
	KindDefinitionList:         "definition_list",
	KindDefinitionListItem:     "definition_list_item",
	KindTerm:                   "term",
	KindTermSep:                "termsep",
	KindClassifier:             "classifier",
	KindDefinition:             "definition",
	KindFieldList:              "field_list",
	KindField:                  "field",
	KindFieldName:              "field_name",
	KindFieldBody:              "field_body",
	KindOptionList:             "option_list",
	KindOptionListItem:         "option_list_item",
	KindOptionGroup:            "option_group",
	KindOption:                 "option",
	KindOptionString:           "option_string",
	KindOptionArgument:         "option_argument",
	KindDescription:            "description",
	KindTable:                  "table",
	KindTabularColSpec:         "tabular_col_spec",
	KindTGroup:                 "tgroup",
	KindColSpec:                "colspec",
	KindTHead:                  "thead",
	KindTBody:                  "tbody",
	KindRow:                    "row",
	KindEntry:                  "entry",
	KindFootnote:               "footnote",
	KindCitation:               "citation",
	KindLabel:                  "label",
	KindAdmonition:             "admonition",
	KindAttention:              "attention",
	KindCaution:                "caution",
	KindDanger:                 "danger",
	KindError:                  "error",
	KindHint:                   "hint",
	KindImportant:              "important",
	KindNote:                   "note",
	KindTip:                    "tip",
	KindWarning:                "warning",
	KindSeeAlso:                "seealso",
	KindVersionModified:        "versionmodified",
	KindDesc:                   "desc",
	KindDescSignature:          "desc_signature",
	KindDescName:               "desc_name",
	KindDescAddName:            "desc_addname",
	KindDescType:               "desc_type",
	KindDescReturns:            "desc_returns",
	KindDescParameterList:      "desc_parameterlist",
	KindDescParameter:          "desc_parameter",
	KindDescOptional:           "desc_optional",
	KindDescAnnotation:         "desc_annotation",
	KindDescContent:            "desc_content",
	KindRefCount:               "refcount",
	KindProductionList:         "productionlist",
	KindProduction:             "production",
	KindText:                   "text",
	KindEmphasis:               "emphasis",
	KindLiteralEmphasis:        "literal_emphasis",
	KindStrong:                 "strong",
	KindLiteral:                "literal",
	KindSubscript:              "subscript",
	KindSuperscript:            "superscript",
	KindAbbreviation:           "abbreviation",
	KindTitleReference:         "title_reference",
	KindFootnoteReference:      "footnote_reference",
	KindCitationReference:      "citation_reference",
	KindReference:              "reference",
	KindPendingXref:            "pending_xref",
	KindDownloadReference:      "download_reference",
	KindGenerated:              "generated",
	KindInline:                 "inline",
	KindProblematic:            "problematic",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind maps a kind name (as returned by String) back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k := KindInvalid + 1; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// IsAdmonition reports whether nodes of this kind are labelled callouts.
// Titles and paragraphs directly inside them are rendered inline.
func (k Kind) IsAdmonition() bool {
	switch k {
	case KindAdmonition, KindAttention, KindCaution, KindDanger, KindError,
		KindHint, KindImportant, KindNote, KindTip, KindWarning, KindSeeAlso:
		return true
	}
	return false
}

// isTextElement reports whether the children of this kind are joined
// without separators when deriving plain text.
func (k Kind) isTextElement() bool {
	switch k {
	case KindDocument, KindSection, KindTopic, KindSidebar, KindCompound,
		KindBlockQuote, KindLineBlock, KindFigure, KindSystemMessage,
		KindBulletList, KindEnumeratedList, KindListItem, KindDefinitionList,
		KindDefinitionListItem, KindDefinition, KindFieldList, KindField,
		KindFieldBody, KindOptionList, KindOptionListItem, KindDescription,
		KindTable, KindTGroup, KindTHead, KindTBody, KindRow, KindEntry,
		KindFootnote, KindCitation, KindAdmonition, KindAttention, KindCaution,
		KindDanger, KindError, KindHint, KindImportant, KindNote, KindTip,
		KindWarning, KindSeeAlso, KindVersionModified, KindDesc, KindDescContent,
		KindGlossary, KindHList, KindHListCol, KindProductionList, KindAcks:
		return false
	}
	return true
}
