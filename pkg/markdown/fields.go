// Package markdown 实现站点专用的 markdown 方言解析：
// 一个站点配置文件（ParseConfig）和若干类别内容文件（ParseContent），
// 解析结果是 internal/models 里的结构化模型。
package markdown

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// markdown 链接 [text](url)
	mdLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)

	// 严格的 markdown 图片语法 ![alt](url)，URL 非空才算命中
	mdImageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

	// 裸 URL，出现在行内任意位置即可
	bareURLRe = regexp.MustCompile(`https?://[^\s)]+`)

	// "链接" 标签前缀（半角/全角冒号均可）
	linkLabelRe = regexp.MustCompile(`^链接\s*[:：]\s*`)

	spaceRunRe  = regexp.MustCompile(`\s+`)
	hyphenRunRe = regexp.MustCompile(`-+`)
)

// Slugify 把标题转换为可用于锚点和缓存键的 slug：
// 去首尾空白、转小写、剔除除 Unicode 字母/数字/空白/-/_/. 之外的字符，
// 空白串折叠为单个连字符，连字符串再折叠为一个。
// 不保证唯一，调用方需容忍碰撞。
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
			r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		}
	}
	out := spaceRunRe.ReplaceAllString(b.String(), "-")
	return hyphenRunRe.ReplaceAllString(out, "-")
}

// ParseField 尝试把一行解析为 "标签: 值" 形式。标签必须从行首精确匹配
// （区分大小写，不做部分匹配），后面允许空白，再跟半角或全角冒号。
// 命中时返回去除空白后的值和 true，否则返回 false。
func ParseField(line, field string) (string, bool) {
	if field == "" || !strings.HasPrefix(line, field) {
		return "", false
	}
	rest := strings.TrimLeft(line[len(field):], " \t")
	switch {
	case strings.HasPrefix(rest, ":"):
		return strings.TrimSpace(rest[1:]), true
	case strings.HasPrefix(rest, "："):
		return strings.TrimSpace(rest[len("："):]), true
	}
	return "", false
}

// ParseLink 解析一个链接字段的值。先剥掉可能存在的 "链接" 标签，
// 然后依次尝试：markdown 链接语法、行内裸 URL、纯文本兜底。
// 非链接内容也会得到一个无害的 {text, "#"}，渲染层不必判空。
func ParseLink(line string) (text, url string) {
	rest := linkLabelRe.ReplaceAllString(strings.TrimSpace(line), "")
	rest = strings.TrimSpace(rest)
	if m := mdLinkRe.FindStringSubmatch(rest); m != nil {
		return m[1], m[2]
	}
	if u := bareURLRe.FindString(rest); u != "" {
		return "访问", u
	}
	if rest == "" {
		return "访问", "#"
	}
	return rest, "#"
}

// stripRelPrefix 去掉资源路径开头的 "../"。内容文件相对自身引用资源，
// 而服务以站点根为基准，这里统一换算。
func stripRelPrefix(p string) string {
	return strings.TrimPrefix(p, "../")
}

// imageURL 从 markdown 图片语法中取出 URL；不是图片语法时返回 false。
func imageURL(value string) (string, bool) {
	if m := mdImageRe.FindStringSubmatch(value); m != nil {
		return m[2], true
	}
	return "", false
}
