package render

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dt "github.com/dgallion1/docrst/internal/doctree"
)

func renderDoc(t *testing.T, doc *dt.Node) string {
	t.Helper()
	out, err := New(DefaultOptions(), nil).Render(doc)
	require.NoError(t, err)
	return out
}

func TestRenderer_SectionAndParagraph(t *testing.T) {
	doc := dt.Document(dt.Section("Title", dt.Para("Hello world")))
	assert.Equal(t, "Title\n=====\n\nHello world\n", renderDoc(t, doc))
}

func TestRenderer_NestedSectionsCycleChars(t *testing.T) {
	doc := dt.Document(
		dt.Section("Top",
			dt.Section("Sub",
				dt.Section("Deep", dt.Para("x")),
			),
		),
	)
	// Each title carries its own surrounding blank lines.
	want := "Top\n===\n\n\nSub\n---\n\n\nDeep\n^^^^\n\nx\n"
	assert.Equal(t, want, renderDoc(t, doc))

	r := New(Options{SectionChars: "#"}, nil)
	out, err := r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "Top\n###\n\n\nSub\n###\n\n\nDeep\n####\n\nx\n", out)
}

func TestRenderer_TitleOutsideSection(t *testing.T) {
	doc := dt.Document(dt.New(dt.KindTopic, dt.Title("Contents"), dt.Para("body")))
	assert.Equal(t, "Contents\n^^^^^^^^\n\nbody\n", renderDoc(t, doc))
}

func TestRenderer_Inline(t *testing.T) {
	tests := []struct {
		name string
		node *dt.Node
		want string
	}{
		{"emphasis", dt.Emphasis("word"), "*word*"},
		{"strong", dt.Strong("word"), "**word**"},
		{"literal", dt.Literal("x := 1"), "``x := 1``"},
		{"title reference", dt.New(dt.KindTitleReference, dt.NewText("Book")), "*Book*"},
		{"subscript", dt.New(dt.KindSubscript, dt.NewText("2")), "_2"},
		{"superscript", dt.New(dt.KindSuperscript, dt.NewText("2")), "^2"},
		{"problematic", dt.New(dt.KindProblematic, dt.NewText("bad")), ">>bad<<"},
		{"footnote reference", dt.New(dt.KindFootnoteReference, dt.NewText("1")), "[1]"},
		{"citation reference", dt.New(dt.KindCitationReference, dt.NewText("CIT")), "[CIT]"},
		{
			"abbreviation",
			dt.New(dt.KindAbbreviation, dt.NewText("HTML")).With(dt.Attrs{Explanation: "HyperText Markup Language"}),
			"HTML (HyperText Markup Language)",
		},
		{"image with alt", dt.New(dt.KindImage).With(dt.Attrs{Alt: "logo", URI: "logo.png"}), "[image: logo]"},
		{"image without alt", dt.New(dt.KindImage).With(dt.Attrs{URI: "logo.png"}), "[image]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := dt.Document(dt.Paragraph(tt.node))
			assert.Equal(t, tt.want+"\n", renderDoc(t, doc))
		})
	}
}

func TestRenderer_References(t *testing.T) {
	tests := []struct {
		name string
		node *dt.Node
		want string
	}{
		{
			"external with name",
			dt.ExternalLink("Example", "http://example.com"),
			"`Example <http://example.com>`_",
		},
		{
			"external without name",
			dt.New(dt.KindReference, dt.NewText("ignored")).With(dt.Attrs{RefURI: "http://example.com"}),
			"`http://example.com <http://example.com>`_",
		},
		{
			"named without uri",
			dt.New(dt.KindReference, dt.NewText("Some Text")).With(dt.Attrs{Name: "Some Text"}),
			"`Some Text`_",
		},
		{
			"refid only renders text",
			dt.New(dt.KindReference, dt.NewText("see "), dt.Emphasis("here")).With(dt.Attrs{RefID: "intro"}),
			"see *here*",
		},
		{
			"internal",
			dt.New(dt.KindReference, dt.Literal("parse")).With(dt.Attrs{RefURI: "api.html#parse", Internal: true}),
			"`parse <api.html#parse>`_",
		},
		{
			"internal with title",
			dt.New(dt.KindReference, dt.NewText("Intro")).With(dt.Attrs{RefURI: "intro.html", Internal: true, RefTitle: "Introduction"}),
			"`Intro <intro.html>`_",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := dt.Document(dt.Paragraph(tt.node))
			assert.Equal(t, tt.want+"\n", renderDoc(t, doc))
		})
	}
}

func TestRenderer_MalformedReference(t *testing.T) {
	doc := dt.Document(dt.Paragraph(dt.New(dt.KindReference, dt.NewText("dangling"))))
	out, err := New(DefaultOptions(), nil).Render(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedReference))
	assert.Empty(t, out)
}

func TestRenderer_BulletList(t *testing.T) {
	doc := dt.Document(dt.BulletList(
		[]*dt.Node{dt.Para("one")},
		[]*dt.Node{dt.Para("two")},
	))
	assert.Equal(t, "* one\n\n* two\n", renderDoc(t, doc))
}

func TestRenderer_EnumeratedListNested(t *testing.T) {
	inner := dt.EnumeratedList(
		[]*dt.Node{dt.Para("a")},
		[]*dt.Node{dt.Para("b")},
	)
	doc := dt.Document(dt.EnumeratedList(
		[]*dt.Node{dt.Para("one")},
		[]*dt.Node{dt.Para("two"), inner},
		[]*dt.Node{dt.Para("three")},
	))
	want := "1. one\n\n2. two\n\n    1. a\n\n    2. b\n\n3. three\n"
	assert.Equal(t, want, renderDoc(t, doc))
}

func TestRenderer_EnumeratedListWideNumbers(t *testing.T) {
	var items [][]*dt.Node
	for i := 0; i < 10; i++ {
		items = append(items, []*dt.Node{dt.Para("item")})
	}
	out := renderDoc(t, dt.Document(dt.EnumeratedList(items...)))
	for i, want := range []string{"1. item", "9. item", "10. item"} {
		assert.Contains(t, out, want, "marker %d", i)
	}
	assert.Equal(t, 10, strings.Count(out, ". item"))
}

func TestRenderer_DefinitionList(t *testing.T) {
	doc := dt.Document(dt.New(dt.KindDefinitionList,
		dt.DefinitionItem("term", "", dt.Para("meaning")),
		dt.DefinitionItem("other", "type", dt.Para("typed")),
	))
	want := "term\n   meaning\n\nother : type\n   typed\n"
	assert.Equal(t, want, renderDoc(t, doc))
}

func TestRenderer_FieldList(t *testing.T) {
	doc := dt.Document(dt.New(dt.KindFieldList, dt.Field("author", dt.Para("Jane"))))
	want := ":author:" + strings.Repeat(" ", 10) + "\n   Jane\n"
	assert.Equal(t, want, renderDoc(t, doc))
}

func TestRenderer_Admonitions(t *testing.T) {
	t.Run("single paragraph", func(t *testing.T) {
		doc := dt.Document(dt.New(dt.KindNote, dt.Para("Be careful.")))
		assert.Equal(t, "Note: Be careful.\n", renderDoc(t, doc))
	})

	t.Run("paragraphs stay separate", func(t *testing.T) {
		doc := dt.Document(dt.New(dt.KindWarning, dt.Para("one"), dt.Para("two")))
		assert.Equal(t, "Warning: one\n\n   two\n", renderDoc(t, doc))
	})

	t.Run("paragraph after list", func(t *testing.T) {
		doc := dt.Document(dt.New(dt.KindNote,
			dt.Para("one"),
			dt.BulletList([]*dt.Node{dt.Para("item")}),
			dt.Para("two"),
		))
		assert.Equal(t, "Note: one\n\n   * item\n\n   two\n", renderDoc(t, doc))
	})

	t.Run("generic with title", func(t *testing.T) {
		doc := dt.Document(dt.New(dt.KindAdmonition, dt.Title("Heads up"), dt.Para("text")))
		assert.Equal(t, "Heads up: text\n", renderDoc(t, doc))
	})

	t.Run("seealso has no label", func(t *testing.T) {
		doc := dt.Document(dt.New(dt.KindSeeAlso, dt.Para("other docs")))
		assert.Equal(t, "other docs\n", renderDoc(t, doc))
	})

	t.Run("localized label", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Labels = DefaultLabels().Merge(map[string]string{"note": "Hinweis"})
		out, err := New(opts, nil).Render(dt.Document(dt.New(dt.KindNote, dt.Para("Achtung."))))
		require.NoError(t, err)
		assert.Equal(t, "Hinweis: Achtung.\n", out)
	})
}

func TestRenderer_VersionModified(t *testing.T) {
	added := dt.New(dt.KindVersionModified).With(dt.Attrs{VersionType: "versionadded", Version: "1.2"})
	assert.Equal(t, "New in version 1.2.\n", renderDoc(t, dt.Document(added)))

	changed := dt.New(dt.KindVersionModified, dt.NewText("Accepts paths.")).
		With(dt.Attrs{VersionType: "versionchanged", Version: "2.0"})
	assert.Equal(t, "Changed in version 2.0: Accepts paths.\n", renderDoc(t, dt.Document(changed)))
}

func TestRenderer_LiteralBlocks(t *testing.T) {
	t.Run("with language", func(t *testing.T) {
		doc := dt.Document(dt.Para("Example:"), dt.LiteralBlock("x = 1", "python"))
		assert.Equal(t, "Example:\n\n.. code-block:: python\n\n   x = 1\n", renderDoc(t, doc))
	})

	t.Run("default language", func(t *testing.T) {
		doc := dt.Document(dt.LiteralBlock("x = 1", "default"))
		assert.Equal(t, "::\n\n   x = 1\n", renderDoc(t, doc))
	})

	t.Run("parsed literal", func(t *testing.T) {
		block := dt.New(dt.KindLiteralBlock, dt.Strong("x"), dt.NewText(" = 1")).
			With(dt.Attrs{RawSource: "**x** = 1", Language: "python"})
		assert.Equal(t, "::\n\n   **x** = 1\n", renderDoc(t, dt.Document(block)))
	})

	t.Run("linenos preserved", func(t *testing.T) {
		block := dt.LiteralBlock("a\nb", "go")
		block.Attrs.Linenos = true
		opts := DefaultOptions()
		opts.PreserveCodeBlockFlags = true
		out, err := New(opts, nil).Render(dt.Document(block))
		require.NoError(t, err)
		assert.Equal(t, ".. code-block:: go\n   :linenos:\n\n   a\n   b\n", out)
	})

	t.Run("linenos dropped by default", func(t *testing.T) {
		block := dt.LiteralBlock("a", "go")
		block.Attrs.Linenos = true
		assert.Equal(t, ".. code-block:: go\n\n   a\n", renderDoc(t, dt.Document(block)))
	})
}

func TestRenderer_Table(t *testing.T) {
	doc := dt.Document(dt.TextTable([][]string{{"A", "B"}, {"C", "D"}}, false))
	want := "+---+---+\n| A | B |\n+---+---+\n| C | D |\n+---+---+\n"
	assert.Equal(t, want, renderDoc(t, doc))
}

func TestRenderer_TableSpans(t *testing.T) {
	wide := dt.Entry("Wide")
	wide.Attrs.MoreCols = 1
	tall := dt.Entry("T")
	tall.Attrs.MoreRows = 1
	doc := dt.Document(dt.Table(
		dt.Row(wide),
		dt.Row(tall, dt.Entry("x")),
		dt.Row(dt.Entry("y")),
	))
	want := strings.Join([]string{
		"+------+---+",
		"| Wide     |",
		"+------+---+",
		"| T    | x |",
		"+      +---+",
		"|      | y |",
		"+------+---+",
	}, "\n") + "\n"
	assert.Equal(t, want, renderDoc(t, doc))
}

func TestRenderer_RaggedTablePadded(t *testing.T) {
	doc := dt.Document(dt.TextTable([][]string{{"a", "b", "c"}, {"d"}}, false))
	want := strings.Join([]string{
		"+---+---+---+",
		"| a | b | c |",
		"+---+---+---+",
		"| d |   |   |",
		"+---+---+---+",
	}, "\n") + "\n"
	assert.Equal(t, want, renderDoc(t, doc))
}

func TestRenderer_NestedTable(t *testing.T) {
	inner := dt.TextTable([][]string{{"x"}}, false)
	outer := dt.Table(nil, dt.Row(dt.New(dt.KindEntry, inner)))
	out, err := New(DefaultOptions(), nil).Render(dt.Document(outer))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNestedTable))
	assert.Empty(t, out)
}

func TestRenderer_EmptyTable(t *testing.T) {
	doc := dt.Document(dt.Para("before"), dt.Table(nil), dt.Para("after"))
	assert.Equal(t, "before\n\nafter\n", renderDoc(t, doc))
}

func TestRenderer_MalformedTree(t *testing.T) {
	tests := []struct {
		name string
		doc  *dt.Node
	}{
		{"row outside table", dt.Document(dt.Row(dt.Entry("x")))},
		{"entry outside table", dt.Document(dt.Entry("x"))},
		{"list item outside list", dt.Document(dt.New(dt.KindListItem, dt.Para("x")))},
		{"nil document", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(DefaultOptions(), nil).Render(tt.doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedTree))
		})
	}
}

func TestRenderer_UnknownKind(t *testing.T) {
	for _, k := range []dt.Kind{dt.KindInvalid, dt.Kind(9999)} {
		doc := dt.Document(dt.Paragraph(dt.New(k)))
		out, err := New(DefaultOptions(), nil).Render(doc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownNode), "kind %d", int(k))
		assert.Empty(t, out)
	}
}

func TestRenderer_EveryDeclaredKindIsHandled(t *testing.T) {
	r := New(DefaultOptions(), nil)
	for _, k := range dt.Kinds() {
		r.reset()
		n := dt.New(k)
		_, err := r.enter(n)
		assert.False(t, errors.Is(err, ErrUnknownNode), "enter %s", k)
	}
}

func TestRenderer_Blocks(t *testing.T) {
	tests := []struct {
		name string
		node *dt.Node
		want string
	}{
		{"rubric", dt.New(dt.KindRubric, dt.NewText("Aside")), "-[ Aside ]-\n"},
		{"target", dt.New(dt.KindTarget).With(dt.Attrs{RefID: "intro"}), ".. _intro:\n"},
		{"target without id", dt.New(dt.KindTarget), ""},
		{
			"line block",
			dt.New(dt.KindLineBlock,
				dt.New(dt.KindLine, dt.NewText("roses")),
				dt.New(dt.KindLine, dt.NewText("violets")),
			),
			"| roses\n| violets\n",
		},
		{"block quote", dt.New(dt.KindBlockQuote, dt.Para("quoted")), "..\n\n   quoted\n"},
		{"comment", dt.New(dt.KindComment, dt.NewText("hidden")), ""},
		{"raw html", dt.New(dt.KindRaw, dt.NewText("<b>x</b>")).With(dt.Attrs{Format: "html"}), ""},
		{"raw text", dt.New(dt.KindRaw, dt.NewText("verbatim")).With(dt.Attrs{Format: "html text"}), "verbatim\n"},
		{"system message", dt.New(dt.KindSystemMessage, dt.Para("oops")), "<SYSTEM MESSAGE: oops>\n"},
		{
			"acks",
			dt.New(dt.KindAcks, dt.BulletList(
				[]*dt.Node{dt.Para("Ann")},
				[]*dt.Node{dt.Para("Bob")},
			)),
			"Ann, Bob.\n",
		},
		{
			"footnote",
			dt.New(dt.KindFootnote, dt.New(dt.KindLabel, dt.NewText("1")), dt.Para("Note text")),
			"[1] Note text\n",
		},
		{
			"citation",
			dt.New(dt.KindCitation, dt.New(dt.KindLabel, dt.NewText("CIT")), dt.Para("Source")),
			"[CIT] Source\n",
		},
		{
			"production list",
			dt.New(dt.KindProductionList,
				dt.New(dt.KindProduction, dt.NewText(" a | b")).With(dt.Attrs{TokenName: "expr"}),
				dt.New(dt.KindProduction, dt.NewText(" c")).With(dt.Attrs{TokenName: "x"}),
			),
			"   expr ::= a | b\n   x    ::= c\n",
		},
		{
			"option list",
			dt.New(dt.KindOptionList, dt.New(dt.KindOptionListItem,
				dt.New(dt.KindOptionGroup,
					dt.New(dt.KindOption, dt.New(dt.KindOptionString, dt.NewText("-a"))),
					dt.New(dt.KindOption,
						dt.New(dt.KindOptionString, dt.NewText("--all")),
						dt.New(dt.KindOptionArgument, dt.NewText("WHAT")).With(dt.Attrs{Delimiter: "="}),
					),
				),
				dt.New(dt.KindDescription, dt.NewText("Show all")),
			)),
			"-a, --all=WHAT     Show all\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderDoc(t, dt.Document(tt.node)))
		})
	}
}

func TestRenderer_Transition(t *testing.T) {
	doc := dt.Document(dt.Para("a"), dt.New(dt.KindTransition), dt.Para("b"))
	want := "a\n\n" + strings.Repeat("=", DefaultMaxWidth) + "\n\nb\n"
	assert.Equal(t, want, renderDoc(t, doc))
}

func TestRenderer_Description(t *testing.T) {
	desc := dt.New(dt.KindDesc,
		dt.New(dt.KindDescSignature,
			dt.New(dt.KindDescName, dt.NewText("parse")).With(dt.Attrs{RawSource: "parse"}),
			dt.New(dt.KindDescParameterList,
				dt.New(dt.KindDescParameter, dt.NewText("src")),
				dt.New(dt.KindDescParameter, dt.NewText("opts")),
			),
			dt.New(dt.KindDescReturns, dt.NewText("Tree")),
		),
		dt.New(dt.KindDescContent, dt.Para("Parses src.")),
	).With(dt.Attrs{ObjType: "function"})
	want := "**parse(src, opts) -> Tree**\n\n   Parses src.\n"
	assert.Equal(t, want, renderDoc(t, dt.Document(desc)))

	desc.Attrs.ObjType = "data"
	assert.Contains(t, renderDoc(t, dt.Document(desc)), "``parse(src, opts) -> Tree``")
}

func TestRenderer_LongAnnotationShortened(t *testing.T) {
	long := strings.Repeat("a", 50) + strings.Repeat("b", 50)
	doc := dt.Document(dt.Paragraph(dt.New(dt.KindDescAnnotation, dt.NewText(long))))
	want := strings.Repeat("a", 23) + " ... " + strings.Repeat("b", 23) + "\n"
	assert.Equal(t, want, renderDoc(t, doc))
}

func TestRenderer_WrapParagraphs(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxWidth = 20
	opts.WrapParagraphs = true
	out, err := New(opts, nil).Render(dt.Document(dt.Para("aaa bbb ccc ddd eee fff")))
	require.NoError(t, err)
	assert.Equal(t, "aaa bbb ccc ddd eee\nfff\n", out)

	out = renderDoc(t, dt.Document(dt.Para("line one\nline two")))
	assert.Equal(t, "line one\nline two\n", out)
}

func TestRenderer_WindowsNewlines(t *testing.T) {
	opts := DefaultOptions()
	opts.Newlines = NewlinesWindows
	out, err := New(opts, nil).Render(dt.Document(dt.Section("Title", dt.Para("Hello world"))))
	require.NoError(t, err)
	assert.Equal(t, "Title\r\n=====\r\n\r\nHello world\r\n", out)
}

func TestRenderer_WarnsOncePerKind(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	doc := dt.Document(
		dt.New(dt.KindSubtitle, dt.NewText("one")),
		dt.New(dt.KindSubtitle, dt.NewText("two")),
		dt.New(dt.KindHList, dt.Para("x")),
	)
	r := New(DefaultOptions(), log)
	_, err := r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(buf.String(), "unsupported formatting"))

	// A second render warns again.
	buf.Reset()
	_, err = r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(buf.String(), "unsupported formatting"))
}

func TestRenderer_ReusableAfterError(t *testing.T) {
	r := New(DefaultOptions(), nil)
	_, err := r.Render(dt.Document(dt.Paragraph(dt.New(dt.KindReference))))
	require.Error(t, err)

	out, err := r.Render(dt.Document(dt.Para("fine")))
	require.NoError(t, err)
	assert.Equal(t, "fine\n", out)
}

func TestRenderer_EmptyDocument(t *testing.T) {
	assert.Equal(t, "", renderDoc(t, dt.Document()))
}
