package markdown

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"Blog_Manager/internal/models"
)

const (
	// 条目未声明序号时参与排序的占位值
	defaultOrderToken = "999"

	openLibraryCoverURL = "https://covers.openlibrary.org/b/isbn/%s-L.jpg"
	steamHeaderCoverURL = "https://cdn.cloudflare.steamstatic.com/steam/apps/%s/header.jpg"
)

var h2Re = regexp.MustCompile(`^##\s+(.+)$`)

// lineTarget 是字段行的写入目标。Item 始终指向当前顶层条目，
// Target 指向实际接收字段的记录：普通条目时与 Item 相同，
// 进入 "###" 子条目后指向该子条目。
type lineTarget struct {
	Item   *models.ContentItem
	Target *models.ContentItem

	// explicitCover 记录哪些记录的封面来自显式的 封面/Cover 字段。
	// 显式封面优先于 ISBN/Steam 推导，与字段行出现的先后无关。
	explicitCover map[*models.ContentItem]struct{}
}

// fieldRule 是一条字段识别规则：任一标签命中后执行 Apply，
// 该行不再尝试后面的规则。
type fieldRule struct {
	Labels []string
	Apply  func(t *lineTarget, value string)
}

// contentRules 是内容文件的字段分发表，按声明顺序逐条尝试，
// 第一条命中即停。标签区分大小写，互不为前缀，顺序不引入歧义。
var contentRules = []fieldRule{
	{Labels: []string{"描述"}, Apply: func(t *lineTarget, v string) { t.Target.Desc = v }},
	{Labels: []string{"技术栈"}, Apply: func(t *lineTarget, v string) { t.Target.Tech = v }},
	{Labels: []string{"状态"}, Apply: func(t *lineTarget, v string) { t.Target.Status = v }},
	// 标签 / 游戏类型 / 书籍类型 统一归入 tags
	{Labels: []string{"标签", "游戏类型", "书籍类型"}, Apply: func(t *lineTarget, v string) { t.Target.Tags = v }},
	{Labels: []string{"开发商", "厂商"}, Apply: func(t *lineTarget, v string) { t.Target.Dev = v }},
	{Labels: []string{"发售平台", "平台"}, Apply: func(t *lineTarget, v string) { t.Target.Platform = v }},
	{Labels: []string{"发售日期", "日期"}, Apply: func(t *lineTarget, v string) { t.Target.ReleaseDate = v }},
	{Labels: []string{"评价"}, Apply: func(t *lineTarget, v string) { t.Target.Review = v }},
	{Labels: []string{"作者"}, Apply: func(t *lineTarget, v string) { t.Target.Author = v }},
	{Labels: []string{"出版年份", "出版时间"}, Apply: func(t *lineTarget, v string) { t.Target.PublishYear = v }},
	{Labels: []string{"拍摄地点"}, Apply: func(t *lineTarget, v string) { t.Target.PhotoLocation = v }},
	{Labels: []string{"拍摄日期"}, Apply: func(t *lineTarget, v string) { t.Target.PhotoDate = v }},
	{Labels: []string{"照片链接"}, Apply: func(t *lineTarget, v string) { t.Target.PhotoURL = stripRelPrefix(v) }},
	{Labels: []string{"心情"}, Apply: func(t *lineTarget, v string) { t.Target.Mood = v }},
	{Labels: []string{"天气"}, Apply: func(t *lineTarget, v string) { t.Target.Weather = v }},
	{Labels: []string{"内容"}, Apply: func(t *lineTarget, v string) { t.Target.Content = v }},
	{Labels: []string{"图片"}, Apply: func(t *lineTarget, v string) {
		if u, ok := imageURL(v); ok {
			v = u
		}
		t.Target.Image = stripRelPrefix(v)
	}},
	{Labels: []string{"地区"}, Apply: func(t *lineTarget, v string) { t.Target.Region = v }},
	{Labels: []string{"时长", "片长"}, Apply: func(t *lineTarget, v string) { t.Target.Duration = v }},
	{Labels: []string{"导演"}, Apply: func(t *lineTarget, v string) { t.Target.Director = v }},
	{Labels: []string{"主演"}, Apply: func(t *lineTarget, v string) { t.Target.Starring = v }},
	{Labels: []string{"展示序号", "序号"}, Apply: func(t *lineTarget, v string) { t.Target.Order = v }},
	{Labels: []string{"链接"}, Apply: func(t *lineTarget, v string) {
		t.Target.LinkText, t.Target.LinkURL = ParseLink(v)
	}},
	// 数量大于 1 时把父条目标记为相册，即使还没有出现 "###" 子条目
	{Labels: []string{"数量"}, Apply: func(t *lineTarget, v string) {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			t.Item.IsSet = true
		}
	}},
	// 封面三级回退：显式图片语法 > ISBN 推导 > Steam 推导。
	// 显式封面可以顶掉先出现的推导封面，但显式封面本身先到先得；
	// 推导规则只在还没有任何封面时生效。
	{Labels: []string{"封面", "Cover"}, Apply: func(t *lineTarget, v string) {
		if _, done := t.explicitCover[t.Target]; done {
			return
		}
		if u, ok := imageURL(v); ok {
			t.Target.Cover = u
			t.explicitCover[t.Target] = struct{}{}
		}
	}},
	{Labels: []string{"ISBN"}, Apply: func(t *lineTarget, v string) {
		if t.Target.Cover == "" && v != "" {
			t.Target.Cover = fmt.Sprintf(openLibraryCoverURL, v)
		}
	}},
	{Labels: []string{"SteamID", "SteamAppID"}, Apply: func(t *lineTarget, v string) {
		if t.Target.Cover == "" && v != "" {
			t.Target.Cover = fmt.Sprintf(steamHeaderCoverURL, v)
		}
	}},
}

// ParseContent 解析一个类别的内容 markdown，返回排好序的条目列表。
//
// "## 标题" 开启新的顶层条目，"### 标题" 在当前条目内开启相册子条目
// 并成为后续字段行的写入目标。没有标题的块不会进入结果。
// 同一段文本解析两次得到完全相同的结果（解析器无状态）。
func ParseContent(text string) []*models.ContentItem {
	var items []*models.ContentItem
	var current, target *models.ContentItem
	explicitCover := make(map[*models.ContentItem]struct{})

	finalize := func() {
		if current == nil {
			return
		}
		if current.Title != "" {
			sortItems(current.Photos)
			items = append(items, current)
		}
		current, target = nil, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// "###" 必须先于 "##" 判断
		if m := h3Re.FindStringSubmatch(line); m != nil {
			if current == nil {
				continue
			}
			title := strings.TrimSpace(m[1])
			if title == "" {
				// 无标题的子块：后续字段行没有归宿，直接丢弃
				target = nil
				continue
			}
			sub := &models.ContentItem{Title: title}
			current.IsSet = true
			current.Photos = append(current.Photos, sub)
			target = sub
			continue
		}

		if m := h2Re.FindStringSubmatch(line); m != nil {
			finalize()
			current = &models.ContentItem{Title: strings.TrimSpace(m[1])}
			target = current
			continue
		}

		if target == nil {
			continue
		}
		applyFieldLine(&lineTarget{Item: current, Target: target, explicitCover: explicitCover}, line)
	}
	finalize()

	sortItems(items)
	return items
}

// applyFieldLine 在分发表中找第一条命中的规则并执行。
// 无法识别的行静默跳过。
func applyFieldLine(t *lineTarget, line string) {
	for _, rule := range contentRules {
		for _, label := range rule.Labels {
			if v, ok := ParseField(line, label); ok {
				rule.Apply(t, v)
				return
			}
		}
	}
}

// CompareOrder 比较两个序号记号。空值按 "999" 处理；两侧都能解析为
// 浮点数且不相等时按数值比较，否则退回原始字符串的字典序。
// 返回值约定同 strings.Compare。
func CompareOrder(a, b string) int {
	if a == "" {
		a = defaultOrderToken
	}
	if b == "" {
		b = defaultOrderToken
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil && fa != fb {
		if fa < fb {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// sortItems 按序号对条目做稳定排序；顶层列表和每个相册的子条目
// 各自独立调用。
func sortItems(list []*models.ContentItem) {
	sort.SliceStable(list, func(i, j int) bool {
		return CompareOrder(list[i].Order, list[j].Order) < 0
	})
}
