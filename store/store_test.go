package store

import (
	"testing"

	"github.com/omnipool-network/omnipool/lib"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	s, err := NewStoreInMemory(lib.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreSetGetDelete(t *testing.T) {
	s := testStore(t)
	// set a pair
	require.NoError(t, s.Set([]byte("a"), []byte("1")))
	// get it back
	got, err := s.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), got)
	// missing keys return nil without error
	got, err = s.Get([]byte("missing"))
	require.NoError(t, err)
	require.Nil(t, got)
	// delete removes the pair
	require.NoError(t, s.Delete([]byte("a")))
	got, err = s.Get([]byte("a"))
	require.NoError(t, err)
	require.Nil(t, got)
	// nil keys are rejected
	_, err = s.Get(nil)
	require.Error(t, err)
}

func TestStoreIterator(t *testing.T) {
	s := testStore(t)
	// insert out of order under two prefixes
	pairs := map[string]string{
		"p/2": "two", "p/1": "one", "p/3": "three", "q/1": "other",
	}
	for k, v := range pairs {
		require.NoError(t, s.Set([]byte(k), []byte(v)))
	}
	it, err := s.Iterator([]byte("p/"))
	require.NoError(t, err)
	defer it.Close()
	// expect lexicographical order within the prefix only
	var keys, values []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
		values = append(values, string(it.Value()))
	}
	require.Equal(t, []string{"p/1", "p/2", "p/3"}, keys)
	require.Equal(t, []string{"one", "two", "three"}, values)
}
