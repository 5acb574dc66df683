package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Tools", want: "tools"},
		{name: "spaces", input: "  Dev   Tools  ", want: "dev-tools"},
		{name: "punctuation", input: "C++ & Go!", want: "c-go"},
		{name: "url", input: "https://demo.test/path", want: "https-demo-test-path"},
		{name: "cjk kept", input: "分类A", want: "分类a"},
		{name: "mixed cjk", input: "开发 工具 Tools", want: "开发-工具-tools"},
		{name: "hyphen runs", input: "a---b", want: "a-b"},
		{name: "edge hyphens", input: "-a-", want: "a"},
		{name: "only symbols", input: "!!!", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "accented latin dropped", input: "Café", want: "caf"},
		{name: "tabs and newlines", input: "a\t\nb", want: "a-b"},
		{name: "underscore", input: "snake_case", want: "snake-case"},
		{name: "fullwidth digits dropped", input: "１２３abc", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Tools", "  Dev   Tools  ", "C++ & Go!", "分类A", "https://demo.test/path",
		"---", "Ünïcödé ☃ 雪", "a - b - c", "ÀÉÎ", "日本語テキスト", "",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeAlphabet(t *testing.T) {
	allowed := regexp.MustCompile(`^[a-z0-9\x{4e00}-\x{9fa5}]+(-[a-z0-9\x{4e00}-\x{9fa5}]+)*$`)
	for _, in := range []string{"分类A", "Hello World", "x--y", "Go 1.25 发布"} {
		got := Normalize(in)
		require.NotEmpty(t, got)
		assert.Regexp(t, allowed, got)
	}
	assert.Contains(t, Normalize("分类A"), "分类")
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "demo", FirstNonEmpty("!!!", "Demo"))
	assert.Equal(t, "site-3", FirstNonEmpty("", "", "site-3"))
	assert.Equal(t, "", FirstNonEmpty("", "?"))
}

func TestRegistryClaim(t *testing.T) {
	r := NewRegistry("example")

	assert.Equal(t, "example-1", r.Claim("example"))
	assert.Equal(t, "example-2", r.Claim("example"))
	assert.Equal(t, "other", r.Claim("other"))
	assert.True(t, r.Taken("example-2"))
	assert.Equal(t, 4, r.Len())
}

func TestRegistryClaimSkipsReservedSuffix(t *testing.T) {
	r := NewRegistry("a", "a-1")
	assert.Equal(t, "a-2", r.Claim("a"))
}
