package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "none", content: "plain text", want: nil},
		{name: "single", content: "back on campus #autumn", want: []string{"autumn"}},
		{name: "multiple", content: "#study session at the #library", want: []string{"study", "library"}},
		{name: "duplicates collapse", content: "hello #foo and #foo again #bar", want: []string{"foo", "bar"}},
		{name: "cjk", content: "food review #美食 #校园生活", want: []string{"美食", "校园生活"}},
		{name: "mixed alphabet", content: "#CS101_期末", want: []string{"CS101_期末"}},
		{name: "bare hash ignored", content: "# notag", want: nil},
		{name: "punctuation ends tag", content: "#food, then more", want: []string{"food"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractTags(tc.content))
		})
	}
}

func TestMergeTags(t *testing.T) {
	tests := []struct {
		name      string
		extracted []string
		extras    []string
		want      []string
	}{
		{name: "both empty", want: nil},
		{name: "extras only", extras: []string{"sports"}, want: []string{"sports"}},
		{name: "overlap dedupes", extracted: []string{"food"}, extras: []string{"food", "campus"}, want: []string{"food", "campus"}},
		{name: "extracted first", extracted: []string{"a", "b"}, extras: []string{"c"}, want: []string{"a", "b", "c"}},
		{name: "empty strings dropped", extras: []string{"", "x"}, want: []string{"x"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mergeTags(tc.extracted, tc.extras))
		})
	}
}
