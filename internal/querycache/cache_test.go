package querycache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlterm/internal/querycache"
	"sqlterm/internal/sqlquery"
)

func TestGetMissesOnUnknownKey(t *testing.T) {
	c := querycache.New(10)
	_, ok := c.Get(querycache.Key("SELECT 1", false))
	assert.False(t, ok)
}

func TestPutThenGetHits(t *testing.T) {
	c := querycache.New(10)
	key := querycache.Key("SELECT * FROM t", false)
	result := sqlquery.Result{Rows: []int{0, 1, 2}, DisplayColumns: []int{0, 1}}

	c.Put(key, result)
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, result.Rows, got.Rows)
}

func TestKeyDistinguishesCaseSensitivity(t *testing.T) {
	assert.NotEqual(t, querycache.Key("SELECT 1", true), querycache.Key("SELECT 1", false))
}

func TestZeroLimitDisablesCache(t *testing.T) {
	c := querycache.New(0)
	key := querycache.Key("SELECT 1", false)
	c.Put(key, sqlquery.Result{Rows: []int{1}})
	_, ok := c.Get(key)
	assert.False(t, ok, "a disabled cache never stores anything")
}

func TestNilCacheIsSafeToUse(t *testing.T) {
	var c *querycache.Cache
	c.Put("k", sqlquery.Result{})
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, int64(0), c.Size())
}

func TestEvictsOldestWhenOverBudget(t *testing.T) {
	// 1MB budget, each entry a big enough Rows slice that only a handful
	// fit at once; inserting past that forces the least-recently-used
	// entries out, oldest first.
	c := querycache.New(1)
	bigRows := make([]int, 20000) // ~160KB estimated per entry

	keys := make([]string, 10)
	for i := range keys {
		keys[i] = querycache.Key(string(rune('a'+i)), false)
		c.Put(keys[i], sqlquery.Result{Rows: bigRows})
	}

	_, firstStillCached := c.Get(keys[0])
	_, lastStillCached := c.Get(keys[len(keys)-1])
	assert.False(t, firstStillCached, "oldest entry should have been evicted")
	assert.True(t, lastStillCached, "most recently inserted entry should survive")
}

func TestInvalidateClearsEverything(t *testing.T) {
	c := querycache.New(10)
	key := querycache.Key("SELECT 1", false)
	c.Put(key, sqlquery.Result{Rows: []int{1}})

	c.Invalidate()
	_, ok := c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, int64(0), c.Size())
}
