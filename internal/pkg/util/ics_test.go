package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderICS(t *testing.T) {
	start := time.Date(2026, 9, 1, 6, 30, 0, 0, time.UTC)
	ics := RenderICS(&ICSEvent{
		UID:         "abc123@huntboard",
		Summary:     "Acme 面试（第 2 轮）- Go 后端",
		Description: "类型: video",
		Location:    "线上",
		Start:       start,
		End:         start.Add(time.Hour),
	})

	lines := strings.Split(ics, "\r\n")
	require.Greater(t, len(lines), 5, "日历行必须以 CRLF 分隔")

	assert.Equal(t, "BEGIN:VCALENDAR", lines[0])
	assert.Contains(t, ics, "UID:abc123@huntboard")
	assert.Contains(t, ics, "DTSTART:20260901T063000Z")
	assert.Contains(t, ics, "DTEND:20260901T073000Z")
	assert.Contains(t, ics, "SUMMARY:Acme 面试（第 2 轮）- Go 后端")
	assert.Contains(t, ics, "END:VCALENDAR")
}

func TestRenderICS_Escaping(t *testing.T) {
	start := time.Date(2026, 9, 1, 6, 30, 0, 0, time.UTC)
	ics := RenderICS(&ICSEvent{
		UID:     "x@huntboard",
		Summary: "A, B; C\n D\\E",
		Start:   start,
		End:     start.Add(time.Hour),
	})

	assert.Contains(t, ics, `SUMMARY:A\, B\; C\n D\\E`)
}

func TestRenderICS_OptionalFields(t *testing.T) {
	start := time.Date(2026, 9, 1, 6, 30, 0, 0, time.UTC)
	ics := RenderICS(&ICSEvent{
		UID:     "x@huntboard",
		Summary: "面试",
		Start:   start,
		End:     start.Add(time.Hour),
	})

	assert.NotContains(t, ics, "DESCRIPTION:")
	assert.NotContains(t, ics, "LOCATION:")
}
