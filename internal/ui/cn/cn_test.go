package cn_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nfrund/parley/internal/ui/cn"
	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      string
	}{
		{
			name:      "no fragments",
			fragments: nil,
			want:      "",
		},
		{
			name:      "only empty fragments",
			fragments: []string{"", "   ", "\t"},
			want:      "",
		},
		{
			name:      "non conflicting classes keep their order",
			fragments: []string{"flex flex-col", "gap-2"},
			want:      "flex flex-col gap-2",
		},
		{
			name:      "whitespace is normalised",
			fragments: []string{"  flex   flex-col ", "", " gap-2"},
			want:      "flex flex-col gap-2",
		},
		{
			name:      "later background wins",
			fragments: []string{"bg-red-500", "bg-blue-500"},
			want:      "bg-blue-500",
		},
		{
			name:      "shorthand padding overrides axis padding",
			fragments: []string{"px-2 py-1", "p-3"},
			want:      "p-3",
		},
		{
			name:      "later gap wins",
			fragments: []string{"flex gap-2", "gap-4"},
			want:      "flex gap-4",
		},
		{
			name:      "duplicate markers collapse to their last position",
			fragments: []string{"group is-user", "is-user max-w-prose", "max-w-prose"},
			want:      "group is-user max-w-prose",
		},
		{
			name:      "duplicate utility moves to its last position",
			fragments: []string{"flex text-sm gap-2", "flex"},
			want:      "text-sm gap-2 flex",
		},
		{
			name:      "winner keeps the position of the overriding fragment",
			fragments: []string{"text-sm text-foreground flex", "text-primary-foreground"},
			want:      "text-sm flex text-primary-foreground",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cn.Merge(tt.fragments...))
		})
	}
}

func TestIf(t *testing.T) {
	assert.Equal(t, "px-4", cn.If(true, "px-4"))
	assert.Empty(t, cn.If(false, "px-4"))
	assert.Equal(t, "flex", cn.Merge("flex", cn.If(false, "hidden")))
}

func TestMerge_KeepsInputOrder(t *testing.T) {
	words := []string{"flex", "flex-col", "items-start", "gap-2", "text-sm", "rounded-lg", "border", "shadow", "italic", "underline"}
	for i := 0; i < 50; i++ {
		// A fresh marker per round keeps every call distinct.
		marker := fmt.Sprintf("msg-%d", i)
		rotated := append(append([]string{}, words[i%len(words):]...), words[:i%len(words)]...)
		want := append([]string{marker}, rotated...)

		got := cn.Merge(marker, strings.Join(rotated[:4], " "), strings.Join(rotated[4:], " "))
		assert.Equal(t, strings.Join(want, " "), got)
	}
}
