package record

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"NULL", Null()},
		{"null", Null()},
		{"'Alice'", NewText("Alice")},
		{`"Bob"`, NewText("Bob")},
		{"'it''s'", NewText("it's")},
		{"TRUE", NewBool(true)},
		{"false", NewBool(false)},
		{"42", NewInt(42)},
		{"-7", NewInt(-7)},
		{"3.14", NewFloat(3.14)},
		{"-0.5", NewFloat(-0.5)},
		{"1e5", NewText("1e5")}, // no '.', not an int: raw text
		{"hello", NewText("hello")},
		{"1.2.3", NewText("1.2.3")},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseLiteral(tt.in), "literal %q", tt.in)
	}
}

func TestNormalizeType(t *testing.T) {
	require.Equal(t, TypeInteger, NormalizeType("int"))
	require.Equal(t, TypeInteger, NormalizeType("BIGINT"))
	require.Equal(t, TypeText, NormalizeType("varchar"))
	require.Equal(t, TypeFloat, NormalizeType("Double"))
	require.Equal(t, TypeBoolean, NormalizeType("bool"))
	require.Equal(t, TypeBlob, NormalizeType("BYTES"))
	require.Equal(t, ColumnType("GEOMETRY"), NormalizeType("GEOMETRY"))
}

func TestCompare(t *testing.T) {
	lt := func(a, b Value) {
		c, ok := Compare(a, b)
		require.True(t, ok)
		require.Negative(t, c)
	}

	lt(NewInt(1), NewInt(2))
	lt(NewInt(1), NewFloat(1.5)) // cross-kind numeric
	lt(NewFloat(0.5), NewInt(1))
	lt(NewText("a"), NewText("b"))
	lt(NewBool(false), NewBool(true))
	lt(Null(), NewInt(0)) // null below everything

	c, ok := Compare(NewInt(3), NewFloat(3.0))
	require.True(t, ok)
	require.Zero(t, c)

	_, ok = Compare(NewText("1"), NewInt(1))
	require.False(t, ok)

	require.True(t, Equal(Null(), Null()))
	require.False(t, Equal(NewText("1"), NewInt(1)))
}

func TestValueJSONRoundTrip(t *testing.T) {
	vals := []Value{
		Null(),
		NewInt(1 << 62), // must not lose precision through float64
		NewFloat(2.5),
		NewBool(true),
		NewText("a,'b\"c"),
		NewBlob([]byte{0x00, 0xff}),
	}
	for _, v := range vals {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		var got Value
		require.NoError(t, json.Unmarshal(b, &got))
		require.Equal(t, v, got)
	}
}

func TestRowRoundTrip(t *testing.T) {
	r := NewRow("1")
	r.Cols["id"] = NewInt(1)
	r.Cols["name"] = NewText("Alice")
	r.Cols["bio"] = Null()

	b, err := EncodeRow(r)
	require.NoError(t, err)
	got, err := DecodeRow(b)
	require.NoError(t, err)
	require.Equal(t, r, got)

	require.True(t, got.Get("missing").IsNull())
	require.False(t, got.Has("missing"))
	require.True(t, got.Has("bio"))
}

func TestSeqIDGenerator(t *testing.T) {
	g := &SeqIDGenerator{}
	require.Equal(t, "row-1", g.NewID())
	require.Equal(t, "row-2", g.NewID())
}
