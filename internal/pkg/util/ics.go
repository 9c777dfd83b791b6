package util

import (
	"strings"
	"time"
)

const icsTimeLayout = "20060102T150405Z"

// ICSEvent 单个日历事件的可导出字段
type ICSEvent struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// RenderICS 生成 VCALENDAR 文本，日历字段按 RFC 5545 使用 CRLF 分隔
func RenderICS(evt *ICSEvent) string {
	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//Huntboard//Interview Scheduler//EN")
	writeLine("BEGIN:VEVENT")
	writeLine("UID:" + evt.UID)
	writeLine("DTSTAMP:" + time.Now().UTC().Format(icsTimeLayout))
	writeLine("DTSTART:" + evt.Start.UTC().Format(icsTimeLayout))
	writeLine("DTEND:" + evt.End.UTC().Format(icsTimeLayout))
	writeLine("SUMMARY:" + escapeICSText(evt.Summary))
	if evt.Description != "" {
		writeLine("DESCRIPTION:" + escapeICSText(evt.Description))
	}
	if evt.Location != "" {
		writeLine("LOCATION:" + escapeICSText(evt.Location))
	}
	writeLine("END:VEVENT")
	writeLine("END:VCALENDAR")

	return b.String()
}

func escapeICSText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
