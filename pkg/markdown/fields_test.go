package markdown

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
)

func TestSlugify_StripsAndCollapses(t *testing.T) {
	require.Equal(t, "萝卜哥-blog", Slugify("萝卜哥 Blog!!"))
	require.Equal(t, "my-project", Slugify("  My   Project  "))
	require.Equal(t, "a-b", Slugify("a - -  b"))
	require.Equal(t, "v1.0_beta", Slugify("V1.0_Beta"))
	require.Equal(t, "", Slugify(""))
	require.Equal(t, "", Slugify("   "))
}

func TestSlugify_OutputAlphabet(t *testing.T) {
	inputs := []string{
		"Hello, World!", "读书《三体》", "a/b\\c", "emoji 🚀 title", "--x--",
	}
	for _, in := range inputs {
		slug := Slugify(in)
		for _, r := range slug {
			ok := unicode.IsLetter(r) || unicode.IsDigit(r) ||
				r == '-' || r == '_' || r == '.'
			require.Truef(t, ok, "slug %q 含有非法字符 %q", slug, r)
		}
		require.NotContains(t, slug, "--")
	}
}

func TestParseField_Colons(t *testing.T) {
	v, ok := ParseField("描述：一段说明", "描述")
	require.True(t, ok)
	require.Equal(t, "一段说明", v)

	v, ok = ParseField("描述: half width", "描述")
	require.True(t, ok)
	require.Equal(t, "half width", v)

	v, ok = ParseField("描述  ：  带空白  ", "描述")
	require.True(t, ok)
	require.Equal(t, "带空白", v)
}

func TestParseField_NoMatch(t *testing.T) {
	_, ok := ParseField("简要描述：x", "描述")
	require.False(t, ok)

	// 标签后面不是冒号
	_, ok = ParseField("描述 一段说明", "描述")
	require.False(t, ok)

	// 区分大小写
	_, ok = ParseField("email: a@b.com", "Email")
	require.False(t, ok)

	_, ok = ParseField("", "描述")
	require.False(t, ok)
}

func TestParseLink_MarkdownSyntax(t *testing.T) {
	text, url := ParseLink("链接：[GitHub](https://x.com)")
	require.Equal(t, "GitHub", text)
	require.Equal(t, "https://x.com", url)
}

func TestParseLink_BareURL(t *testing.T) {
	text, url := ParseLink("链接：详见 https://example.com/page 页面")
	require.Equal(t, "访问", text)
	require.Equal(t, "https://example.com/page", url)
}

func TestParseLink_FreeTextFallback(t *testing.T) {
	text, url := ParseLink("链接：敬请期待")
	require.Equal(t, "敬请期待", text)
	require.Equal(t, "#", url)

	text, url = ParseLink("链接：")
	require.Equal(t, "访问", text)
	require.Equal(t, "#", url)
}
