package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxnWriteAndDiscard(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Set([]byte("base"), []byte("v0")))
	// buffered writes are invisible to the parent until Write()
	txn := NewTxn(s)
	require.NoError(t, txn.Set([]byte("a"), []byte("1")))
	require.NoError(t, txn.Delete([]byte("base")))
	got, err := s.Get([]byte("a"))
	require.NoError(t, err)
	require.Nil(t, got)
	// but visible through the txn itself
	got, err = txn.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), got)
	got, err = txn.Get([]byte("base"))
	require.NoError(t, err)
	require.Nil(t, got)
	// discard drops everything
	txn.Discard()
	got, err = s.Get([]byte("base"))
	require.NoError(t, err)
	require.Equal(t, []byte("v0"), got)
	// a second txn flushed with Write() lands in the parent
	txn = NewTxn(s)
	require.NoError(t, txn.Set([]byte("a"), []byte("2")))
	require.NoError(t, txn.Delete([]byte("base")))
	require.NoError(t, txn.Write())
	got, err = s.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("2"), got)
	got, err = s.Get([]byte("base"))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestTxnMergedIterator(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		parent   map[string]string
		sets     map[string]string
		deletes  []string
		expected []string
	}{
		{
			name:     "txn only",
			detail:   "iteration over keys that only exist in the buffer",
			sets:     map[string]string{"p/1": "a", "p/2": "b"},
			expected: []string{"p/1", "p/2"},
		},
		{
			name:     "parent only",
			detail:   "iteration falls through to the parent when the buffer is empty",
			parent:   map[string]string{"p/1": "a", "p/2": "b"},
			expected: []string{"p/1", "p/2"},
		},
		{
			name:     "interleaved",
			detail:   "buffer and parent keys merge in lexicographical order",
			parent:   map[string]string{"p/1": "a", "p/3": "c"},
			sets:     map[string]string{"p/2": "b", "p/4": "d"},
			expected: []string{"p/1", "p/2", "p/3", "p/4"},
		},
		{
			name:     "shadowed and deleted",
			detail:   "buffered writes shadow the parent and buffered deletes hide parent keys",
			parent:   map[string]string{"p/1": "a", "p/2": "b", "p/3": "c"},
			sets:     map[string]string{"p/2": "B"},
			deletes:  []string{"p/1"},
			expected: []string{"p/2", "p/3"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := testStore(t)
			for k, v := range test.parent {
				require.NoError(t, s.Set([]byte(k), []byte(v)))
			}
			txn := NewTxn(s)
			for k, v := range test.sets {
				require.NoError(t, txn.Set([]byte(k), []byte(v)))
			}
			for _, k := range test.deletes {
				require.NoError(t, txn.Delete([]byte(k)))
			}
			it, err := txn.Iterator([]byte("p/"))
			require.NoError(t, err)
			defer it.Close()
			var keys []string
			for ; it.Valid(); it.Next() {
				keys = append(keys, string(it.Key()))
			}
			require.Equal(t, test.expected, keys, test.detail)
			// shadowed values come from the buffer
			for k, v := range test.sets {
				got, e := txn.Get([]byte(k))
				require.NoError(t, e)
				require.Equal(t, []byte(v), got)
			}
		})
	}
}
