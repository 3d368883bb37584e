package render

import (
	"github.com/pkg/errors"

	"github.com/dgallion1/docrst/internal/doctree"
)

const (
	cont = doctree.WalkContinue
	skip = doctree.WalkSkipChildren
)

// enter handles the opening of a node. Every declared kind has a case; a
// kind without one is an error.
func (r *Renderer) enter(n *doctree.Node) (doctree.WalkStatus, error) {
	s := r.stack
	switch n.Kind {
	// Structure.
	case doctree.KindDocument, doctree.KindCompound, doctree.KindGlossary,
		doctree.KindCentered, doctree.KindCompactParagraph, doctree.KindCaption:
		return cont, nil
	case doctree.KindSection:
		r.sectionLevel++
		return cont, nil
	case doctree.KindTitle:
		return r.enterTitle(n)
	case doctree.KindSubtitle, doctree.KindHList, doctree.KindHListCol, doctree.KindDownloadReference:
		r.warnOnce(n)
		return cont, nil
	case doctree.KindTopic, doctree.KindSidebar, doctree.KindDesc, doctree.KindAdmonition,
		doctree.KindDoctestBlock, doctree.KindLineBlock, doctree.KindOptionListItem:
		s.push(0)
		return cont, nil
	case doctree.KindRubric:
		s.push(0)
		s.appendRaw("-[ ")
		return cont, nil
	case doctree.KindAttribution:
		s.appendRaw("-- ")
		return cont, nil
	case doctree.KindTransition:
		return r.transition()
	case doctree.KindParagraph:
		r.enterParagraph(n)
		return cont, nil
	case doctree.KindBlockQuote:
		s.appendRaw("..")
		s.push(r.opts.Indent)
		return cont, nil
	case doctree.KindLine:
		s.appendRaw("| ")
		return cont, nil
	case doctree.KindLiteralBlock:
		r.enterLiteralBlock(n)
		return cont, nil
	case doctree.KindFigure, doctree.KindDescContent, doctree.KindDefinition,
		doctree.KindFieldBody, doctree.KindSeeAlso:
		s.push(r.opts.Indent)
		return cont, nil
	case doctree.KindImage:
		r.image(n)
		return skip, nil
	case doctree.KindTarget:
		if n.Attrs.RefID != "" {
			s.push(0)
			s.appendRaw(".. _" + n.Attrs.RefID + ":\n")
		}
		return cont, nil
	case doctree.KindComment, doctree.KindIndex, doctree.KindMeta,
		doctree.KindSubstitutionDefinition, doctree.KindHighlightLang,
		doctree.KindTabularColSpec, doctree.KindLabel:
		return skip, nil
	case doctree.KindRaw:
		r.raw(n)
		return skip, nil
	case doctree.KindSystemMessage:
		return r.systemMessage(n)
	case doctree.KindAcks:
		return r.acks(n)

	// Lists.
	case doctree.KindBulletList:
		r.lists.push(listBullet)
		return cont, nil
	case doctree.KindEnumeratedList:
		r.lists.push(listEnumerated)
		return cont, nil
	case doctree.KindDefinitionList:
		r.lists.push(listDefinition)
		return cont, nil
	case doctree.KindListItem:
		return cont, r.enterListItem()
	case doctree.KindDefinitionListItem, doctree.KindFieldList, doctree.KindOptionList,
		doctree.KindOptionString, doctree.KindDescription:
		return cont, nil
	case doctree.KindTerm, doctree.KindField:
		s.push(0)
		return cont, nil
	case doctree.KindTermSep:
		s.appendRaw(", ")
		return skip, nil
	case doctree.KindClassifier:
		s.appendRaw(" : ")
		return cont, nil
	case doctree.KindFieldName:
		s.appendRaw(":")
		return cont, nil
	case doctree.KindOptionGroup:
		r.firstOption = true
		return cont, nil
	case doctree.KindOption:
		if r.firstOption {
			r.firstOption = false
		} else {
			s.appendRaw(", ")
		}
		return cont, nil
	case doctree.KindOptionArgument:
		s.appendRaw(n.Attrs.Delimiter)
		return cont, nil

	// Tables.
	case doctree.KindTable:
		return cont, r.enterTable()
	case doctree.KindTGroup, doctree.KindTHead, doctree.KindTBody:
		return cont, nil
	case doctree.KindColSpec:
		// Column widths come from the cell text; colspec widths are ignored.
		return skip, r.requireTable(n)
	case doctree.KindRow:
		if err := r.requireTable(n); err != nil {
			return skip, err
		}
		r.table.startRow()
		return cont, nil
	case doctree.KindEntry:
		if err := r.requireTable(n); err != nil {
			return skip, err
		}
		s.push(0)
		return cont, nil

	// Notes and admonitions.
	case doctree.KindFootnote, doctree.KindCitation:
		r.enterNote(n)
		return cont, nil
	case doctree.KindAttention, doctree.KindCaution, doctree.KindDanger, doctree.KindError,
		doctree.KindHint, doctree.KindImportant, doctree.KindNote, doctree.KindTip,
		doctree.KindWarning:
		s.push(r.opts.Indent)
		return cont, nil
	case doctree.KindVersionModified:
		r.enterVersionModified(n)
		return cont, nil

	// Object descriptions.
	case doctree.KindDescSignature:
		s.appendRaw(signatureMark(n))
		return cont, nil
	case doctree.KindDescName:
		name := n.Attrs.RawSource
		if name == "" {
			name = n.Text()
		}
		s.appendRaw(name)
		return skip, nil
	case doctree.KindDescAddName, doctree.KindDescType, doctree.KindRefCount, doctree.KindProduction:
		return cont, nil
	case doctree.KindDescReturns:
		s.appendRaw(" -> ")
		return cont, nil
	case doctree.KindDescParameterList:
		s.appendRaw("(")
		r.firstParam = true
		return cont, nil
	case doctree.KindDescParameter:
		if r.firstParam {
			r.firstParam = false
		} else {
			s.appendRaw(", ")
		}
		s.appendRaw(n.Text())
		return skip, nil
	case doctree.KindDescOptional:
		s.appendRaw("[")
		return cont, nil
	case doctree.KindDescAnnotation:
		return r.descAnnotation(n), nil
	case doctree.KindProductionList:
		return skip, r.productionList(n)

	// Inline.
	case doctree.KindText:
		s.appendRaw(n.Value)
		return cont, nil
	case doctree.KindEmphasis, doctree.KindLiteralEmphasis, doctree.KindTitleReference:
		s.appendRaw("*")
		return cont, nil
	case doctree.KindStrong:
		s.appendRaw("**")
		return cont, nil
	case doctree.KindLiteral:
		s.appendRaw("``")
		return cont, nil
	case doctree.KindSubscript:
		s.appendRaw("_")
		return cont, nil
	case doctree.KindSuperscript:
		s.appendRaw("^")
		return cont, nil
	case doctree.KindAbbreviation, doctree.KindPendingXref, doctree.KindGenerated, doctree.KindInline:
		return cont, nil
	case doctree.KindFootnoteReference, doctree.KindCitationReference:
		s.appendRaw("[" + n.Text() + "]")
		return skip, nil
	case doctree.KindReference:
		return r.enterReference(n)
	case doctree.KindProblematic:
		s.appendRaw(">>")
		return cont, nil
	}
	return skip, errors.Wrapf(ErrUnknownNode, "enter %s", n.Kind)
}

// exit handles the closing of a node whose enter returned WalkContinue.
func (r *Renderer) exit(n *doctree.Node) error {
	s := r.stack
	switch n.Kind {
	case doctree.KindDocument, doctree.KindCompound, doctree.KindGlossary,
		doctree.KindCentered, doctree.KindCompactParagraph, doctree.KindCaption,
		doctree.KindSubtitle, doctree.KindHList, doctree.KindHListCol,
		doctree.KindDownloadReference, doctree.KindAttribution,
		doctree.KindDefinitionListItem, doctree.KindFieldList, doctree.KindOptionList,
		doctree.KindOptionString, doctree.KindDescription, doctree.KindOption,
		doctree.KindOptionArgument, doctree.KindTGroup, doctree.KindTHead, doctree.KindTBody,
		doctree.KindDescAddName, doctree.KindDescType, doctree.KindRefCount,
		doctree.KindProduction, doctree.KindDescReturns, doctree.KindDescAnnotation,
		doctree.KindText, doctree.KindSubscript, doctree.KindSuperscript,
		doctree.KindPendingXref, doctree.KindGenerated, doctree.KindInline,
		doctree.KindReference:
		return nil
	case doctree.KindSection:
		r.sectionLevel--
		return nil
	case doctree.KindTitle:
		return r.exitTitle(n)
	case doctree.KindTopic, doctree.KindSidebar, doctree.KindDesc, doctree.KindAdmonition,
		doctree.KindOptionListItem, doctree.KindFigure, doctree.KindDescContent,
		doctree.KindDefinition, doctree.KindFieldBody, doctree.KindBlockQuote,
		doctree.KindVersionModified:
		return s.pop(popOpts{end: blankEnd})
	case doctree.KindRubric:
		s.appendRaw(" ]-")
		return s.pop(popOpts{end: blankEnd})
	case doctree.KindDoctestBlock, doctree.KindLineBlock, doctree.KindLiteralBlock:
		return s.pop(popOpts{end: blankEnd})
	case doctree.KindParagraph:
		if inlineParagraph(n) {
			return nil
		}
		return s.pop(popOpts{wrap: r.opts.WrapParagraphs, end: blankEnd})
	case doctree.KindLine:
		s.appendRaw("\n")
		return nil
	case doctree.KindTarget:
		if n.Attrs.RefID == "" {
			return nil
		}
		return s.pop(popOpts{end: blankEnd})

	case doctree.KindBulletList, doctree.KindEnumeratedList, doctree.KindDefinitionList:
		return r.lists.pop()
	case doctree.KindListItem:
		return r.exitListItem()
	case doctree.KindTerm:
		if hasClassifierAfter(n) {
			return nil
		}
		return s.pop(popOpts{})
	case doctree.KindClassifier:
		if hasClassifierAfter(n) {
			return nil
		}
		return s.pop(popOpts{})
	case doctree.KindField:
		return s.pop(popOpts{})
	case doctree.KindFieldName:
		r.exitFieldName(n)
		return nil
	case doctree.KindOptionGroup:
		s.appendRaw("     ")
		return nil

	case doctree.KindTable:
		return r.exitTable()
	case doctree.KindRow:
		r.table.endRow()
		return nil
	case doctree.KindEntry:
		return r.exitEntry(n)

	case doctree.KindFootnote, doctree.KindCitation:
		return r.exitNote()
	case doctree.KindAttention, doctree.KindCaution, doctree.KindDanger, doctree.KindError,
		doctree.KindHint, doctree.KindImportant, doctree.KindNote, doctree.KindTip,
		doctree.KindWarning:
		label := r.opts.Labels.Get(LabelKey(n.Kind.String()))
		return s.pop(popOpts{end: blankEnd, first: withFirst(label + ": ")})
	case doctree.KindSeeAlso:
		return s.pop(popOpts{end: blankEnd, first: withFirst("")})

	case doctree.KindDescSignature:
		s.appendRaw(signatureMark(n))
		return nil
	case doctree.KindDescParameterList:
		s.appendRaw(")")
		return nil
	case doctree.KindDescOptional:
		s.appendRaw("]")
		return nil

	case doctree.KindEmphasis, doctree.KindLiteralEmphasis, doctree.KindTitleReference:
		s.appendRaw("*")
		return nil
	case doctree.KindStrong:
		s.appendRaw("**")
		return nil
	case doctree.KindLiteral:
		s.appendRaw("``")
		return nil
	case doctree.KindAbbreviation:
		if n.Attrs.Explanation != "" {
			s.appendRaw(" (" + n.Attrs.Explanation + ")")
		}
		return nil
	case doctree.KindProblematic:
		s.appendRaw("<<")
		return nil
	}
	return errors.Wrapf(ErrUnknownNode, "exit %s", n.Kind)
}
