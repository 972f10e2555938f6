// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token_test

import (
	"io"
	"strings"
	"testing"

	"github.com/mcdoc-lang/mcdoc/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()

	lex := token.NewLexer("test.mcdoc", strings.NewReader(src))

	var toks []token.Token

	for {
		tk, err := lex.Token()
		if err == io.EOF {
			break
		}

		require.NoError(t, err)
		toks = append(toks, tk)
	}

	return toks
}

func TestLexerIdentVsResLoc(t *testing.T) {
	toks := scanAll(t, "foo minecraft:stone bar:")

	require.Len(t, toks, 4)
	assert.Equal(t, token.TypeIdent, toks[0].TokenType())
	assert.Equal(t, token.TypeResLoc, toks[1].TokenType())
	assert.Equal(t, "minecraft", toks[1].(*token.ResLoc).Namespace)
	assert.Equal(t, "stone", toks[1].(*token.ResLoc).Path)

	// "bar:" with nothing valid after ':' lexes as an Ident then a Colon.
	assert.Equal(t, token.TypeIdent, toks[2].TokenType())
	assert.Equal(t, token.TypePunct, toks[3].TokenType())
	assert.Equal(t, token.Colon, toks[3].(*token.Punct).Value)
}

func TestLexerRangePunctuation(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{"..", []string{token.RangeClosed}},
		{"..<", []string{token.RangeOpenHi}},
		{"<..", []string{token.RangeOpenLo}},
		{"<..<", []string{token.RangeOpen}},
		{"...", []string{token.Ellipsis}},
		{"::", []string{token.PathSep}},
	}

	for _, c := range cases {
		toks := scanAll(t, c.src)
		require.Len(t, toks, len(c.want), "src=%q", c.src)

		for i, w := range c.want {
			p, ok := toks[i].(*token.Punct)
			require.True(t, ok)
			assert.Equal(t, w, p.Value)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	toks := scanAll(t, "10 3.5 -7 10b 3.5f 9001L")
	require.Len(t, toks, 6)

	assert.Equal(t, int64(10), toks[0].(*token.Int).Value)
	assert.Equal(t, 3.5, toks[1].(*token.Float).Value)
	assert.Equal(t, int64(-7), toks[2].(*token.Int).Value)

	tn := toks[3].(*token.TypedNum)
	assert.Equal(t, token.SuffixByte, tn.Suffix)
	assert.Equal(t, int64(10), tn.IntVal)

	tf := toks[4].(*token.TypedNum)
	assert.True(t, tf.IsFloat)
	assert.Equal(t, 3.5, tf.FltVal)

	tl := toks[5].(*token.TypedNum)
	assert.Equal(t, token.SuffixLong, tl.Suffix)
	assert.Equal(t, int64(9001), tl.IntVal)
}

func TestLexerStringEscapes(t *testing.T) {
	toks := scanAll(t, `"hello\nworld" "A"`)
	require.Len(t, toks, 2)

	assert.Equal(t, "hello\nworld", toks[0].(*token.String).Value)
	assert.Equal(t, "A", toks[1].(*token.String).Value)
}

func TestLexerDocCommentAndLineComment(t *testing.T) {
	toks := scanAll(t, "// not kept\n/// kept\nfoo")
	require.Len(t, toks, 2)

	dc, ok := toks[0].(*token.DocComment)
	require.True(t, ok)
	assert.Equal(t, "kept", dc.Value)
	assert.Equal(t, token.TypeIdent, toks[1].TokenType())
}

func TestLexerReservedWords(t *testing.T) {
	assert.True(t, token.IsReserved("struct"))
	assert.True(t, token.IsReserved("any"))
	assert.True(t, token.IsReserved("unsafe"))
	assert.False(t, token.IsReserved("Foo"))
}
