package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCache_SetGet(t *testing.T) {
	c := NewReportCache(time.Minute)

	assert.Nil(t, c.Get("missing"))

	c.Set("report:dashboard:1", "v1", time.Minute)
	assert.Equal(t, "v1", c.Get("report:dashboard:1"))

	// 覆盖写
	c.Set("report:dashboard:1", "v2", time.Minute)
	assert.Equal(t, "v2", c.Get("report:dashboard:1"))
}

func TestReportCache_Expiry(t *testing.T) {
	c := NewReportCache(time.Minute)

	c.Set("short", 42, 30*time.Millisecond)
	require.Equal(t, 42, c.Get("short"))

	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, c.Get("short"), "过期条目必须返回 nil")
}

func TestReportCache_DefaultTTL(t *testing.T) {
	c := NewReportCache(30 * time.Millisecond)

	// ttl <= 0 时回落到默认 TTL
	c.Set("fallback", "x", 0)
	require.Equal(t, "x", c.Get("fallback"))

	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, c.Get("fallback"))
}

func TestReportCache_DeleteAndClear(t *testing.T) {
	c := NewReportCache(time.Minute)

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Delete("a")
	assert.Nil(t, c.Get("a"))
	assert.Equal(t, 2, c.Get("b"))

	c.Clear()
	assert.Nil(t, c.Get("b"))
	assert.Equal(t, 0, c.Stats().Size)
}

func TestReportCache_Stats(t *testing.T) {
	c := NewReportCache(time.Minute)

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	stats := c.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.ElementsMatch(t, []string{"a", "b"}, stats.Keys)
}
