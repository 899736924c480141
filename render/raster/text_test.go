package raster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fixedWidth(s string) int { return len(s) * 7 }

func TestLayoutLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		maxLines int
		trim     bool
		want     []string
	}{
		{name: "fits", text: "Hello", width: 100, maxLines: 1, trim: true, want: []string{"Hello"}},
		{name: "ellipsis", text: "Hello world", width: 49, maxLines: 1, trim: true, want: []string{"Hell..."}},
		{name: "cut without ellipsis", text: "Hello world", width: 49, maxLines: 1, want: []string{"Hello w"}},
		{name: "first line only", text: "a\nb", width: 100, want: []string{"a"}},
		{name: "first line with ellipsis", text: "a\nb", width: 100, trim: true, want: []string{"a..."}},
		{name: "wraps", text: "one two three", width: 63, maxLines: 3, want: []string{"one two", "three"}},
		{
			name: "wrap limit", text: "one two three four", width: 63, maxLines: 2, trim: true,
			want: []string{"one two", "three..."},
		},
		{name: "too narrow for ellipsis", text: "abc", width: 7, maxLines: 1, trim: true, want: []string{"..."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, layoutLines(tt.text, tt.width, tt.maxLines, tt.trim, fixedWidth))
		})
	}
}
