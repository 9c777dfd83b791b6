package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"裸 JSON", `{"score": 80}`, `{"score": 80}`},
		{"json 围栏", "```json\n{\"score\": 80}\n```", `{"score": 80}`},
		{"无语言标记围栏", "```\n{\"score\": 80}\n```", `{"score": 80}`},
		{"前后空白", "  \n{\"score\": 80}\n  ", `{"score": 80}`},
		{"空字符串", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.raw))
		})
	}
}
