package render

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStack_PopSplitsRawRuns(t *testing.T) {
	s := newStateStack(70)
	s.push(3)
	s.appendRaw("a\n")
	s.appendRaw("b")
	require.NoError(t, s.pop(popOpts{end: blankEnd}))

	require.Len(t, s.root().entries, 1)
	assert.Equal(t, entry{indent: 3, lines: []string{"a", "b", ""}}, s.root().entries[0])
}

func TestStateStack_PopKeepsBlocksBetweenRuns(t *testing.T) {
	s := newStateStack(70)
	s.push(2)
	s.appendRaw("head")
	s.appendBlock(4, []string{"nested"})
	s.appendRaw("tail")
	require.NoError(t, s.pop(popOpts{}))

	assert.Equal(t, []entry{
		{indent: 2, lines: []string{"head"}},
		{indent: 6, lines: []string{"nested"}},
		{indent: 2, lines: []string{"tail"}},
	}, s.root().entries)
}

func TestStateStack_FirstSplicesOntoFirstLine(t *testing.T) {
	s := newStateStack(70)
	s.push(2)
	s.appendRaw("one\ntwo")
	require.NoError(t, s.pop(popOpts{first: withFirst("* ")}))

	assert.Equal(t, []entry{
		{indent: 0, lines: []string{"* one"}},
		{indent: 2, lines: []string{"two"}},
	}, s.root().entries)
}

func TestStateStack_WrapUsesRemainingWidth(t *testing.T) {
	s := newStateStack(10)
	s.push(4)
	s.appendRaw("aaa bbb ccc")
	require.NoError(t, s.pop(popOpts{wrap: true}))

	require.Len(t, s.root().entries, 1)
	assert.Equal(t, []string{"aaa", "bbb", "ccc"}, s.root().entries[0].lines)
}

func TestStateStack_Underflow(t *testing.T) {
	s := newStateStack(70)
	err := s.pop(popOpts{})
	assert.True(t, errors.Is(err, ErrUnbalancedStack))

	_, err = s.take()
	assert.True(t, errors.Is(err, ErrUnbalancedStack))
}

func TestStateStack_CumulativeIndent(t *testing.T) {
	s := newStateStack(70)
	s.push(3)
	s.push(2)
	assert.Equal(t, 5, s.cumulativeIndent())
	assert.Equal(t, 2, s.depth())
}

func TestFrame_FlatText(t *testing.T) {
	f := &frame{entries: []entry{
		{indent: rawIndent, text: "a\nb"},
		{indent: 0, lines: []string{"c", ""}},
	}}
	assert.Equal(t, "abc", f.flatText())
	assert.Equal(t, "a\nb", f.rawText())
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a"}, splitLines("a\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\r\n\nb"))
}
