package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryGetPutDelete(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get([]byte("k"))
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Put([]byte("k"), []byte("v1")))
	v, ok, err := m.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v1"), v)

	require.NoError(t, m.Put([]byte("k"), []byte("v2")))
	v, _, _ = m.Get([]byte("k"))
	require.Equal(t, []byte("v2"), v)

	require.NoError(t, m.Delete([]byte("k")))
	_, ok, _ = m.Get([]byte("k"))
	require.False(t, ok)

	// deleting an absent key is fine
	require.NoError(t, m.Delete([]byte("k")))
}

func TestMemoryScanOrderedByPrefix(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Put([]byte("a/2"), []byte("x")))
	require.NoError(t, m.Put([]byte("a/1"), []byte("y")))
	require.NoError(t, m.Put([]byte("b/1"), []byte("z")))

	got, err := m.Scan([]byte("a/"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, []byte("a/1"), got[0].Key)
	require.Equal(t, []byte("a/2"), got[1].Key)

	all, err := m.Scan(nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	v := []byte("abc")
	require.NoError(t, m.Put([]byte("k"), v))
	v[0] = 'X'

	got, _, _ := m.Get([]byte("k"))
	require.Equal(t, []byte("abc"), got)

	got[1] = 'Y'
	again, _, _ := m.Get([]byte("k"))
	require.Equal(t, []byte("abc"), again)
}
