package markdown

import (
	"bufio"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"Blog_Manager/internal/models"
)

// 类别未声明展示序号时的默认值，使其排在所有显式声明的类别之后。
const defaultCategoryOrder = 99

var (
	headingRe = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
	h3Re      = regexp.MustCompile(`^###\s+(.+)$`)

	// 类别的 "链接" 字段值形如 "[游戏](../content/games.md)"，
	// 取末尾括号里的路径。
	trailingParenRe = regexp.MustCompile(`\(([^)]+)\)\s*$`)

	tagSplitRe = regexp.MustCompile(`[、,，]`)
)

// 配置文件的三个小节
type configSection int

const (
	sectionNone configSection = iota
	sectionBlog
	sectionAuthor
	sectionCategories
)

// ParseConfig 解析站点配置 markdown，返回完整的 SiteConfig。
//
// 按文档顺序识别三个小节标题（博客信息 / 作者信息 / 展示类别），
// 小节内的字段行写入对应模型；展示类别小节里每个 "### 标题" 开启
// 一个新类别。空行和无法识别的行一律跳过，解析器没有严格模式。
func ParseConfig(text string) *models.SiteConfig {
	site := &models.SiteConfig{}
	section := sectionNone
	var current *models.CategoryMeta

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// 展示类别小节里的 "###" 行优先按类别标题处理，
		// 避免把类别名当成小节标题。
		if section == sectionCategories {
			if m := h3Re.FindStringSubmatch(line); m != nil {
				title := strings.TrimSpace(m[1])
				current = &models.CategoryMeta{
					Title: title,
					ID:    Slugify(title),
					Type:  "default",
					Order: defaultCategoryOrder,
				}
				site.Categories = append(site.Categories, current)
				continue
			}
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			heading := strings.TrimSpace(m[1])
			switch {
			case strings.Contains(heading, "博客信息"):
				section = sectionBlog
			case strings.Contains(heading, "作者信息"):
				section = sectionAuthor
			case strings.Contains(heading, "展示类别"):
				section = sectionCategories
				current = nil
			}
			continue
		}

		switch section {
		case sectionBlog:
			parseBlogLine(&site.BlogInfo, line)
		case sectionAuthor:
			parseAuthorLine(&site.AuthorInfo, line)
		case sectionCategories:
			if current != nil {
				parseCategoryLine(current, line)
			}
		}
	}

	// 按展示序号升序，未声明的（默认 99）排在最后；
	// 同序号保持配置文件中的出现顺序。
	sort.SliceStable(site.Categories, func(i, j int) bool {
		return site.Categories[i].Order < site.Categories[j].Order
	})
	return site
}

func parseBlogLine(info *models.BlogInfo, line string) {
	if v, ok := ParseField(line, "博客名称"); ok {
		info.Title = v
	} else if v, ok := ParseField(line, "网站描述"); ok {
		info.Desc = v
	} else if v, ok := ParseField(line, "标语"); ok {
		info.Slogan = v
	} else if v, ok := ParseField(line, "版权"); ok {
		info.Copyright = v
	} else if v, ok := ParseField(line, "网站图标"); ok {
		if u, isImg := imageURL(v); isImg {
			v = u
		}
		info.Favicon = stripRelPrefix(v)
	}
}

func parseAuthorLine(info *models.AuthorInfo, line string) {
	if v, ok := ParseField(line, "姓名"); ok {
		info.Name = v
	} else if v, ok := ParseField(line, "头像"); ok {
		if u, isImg := imageURL(v); isImg {
			v = u
		}
		info.Avatar = stripRelPrefix(v)
	} else if v, ok := ParseField(line, "Email"); ok {
		if strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">") {
			v = strings.TrimSpace(v[1 : len(v)-1])
		}
		info.Email = v
	} else if v, ok := ParseField(line, "Github"); ok {
		if m := mdLinkRe.FindStringSubmatch(v); m != nil {
			v = m[2]
		}
		info.Github = v
	} else if v, ok := ParseField(line, "标签"); ok {
		info.Tags = splitTags(v)
	}
}

func parseCategoryLine(cat *models.CategoryMeta, line string) {
	if v, ok := ParseField(line, "样式类型"); ok {
		cat.Type = v
	} else if v, ok := ParseField(line, "展示序号"); ok {
		// 非数字的序号落回默认值，和未声明同一档
		if n, err := strconv.Atoi(v); err == nil {
			cat.Order = n
		}
	} else if v, ok := ParseField(line, "强调色"); ok {
		cat.Color = v
	} else if v, ok := ParseField(line, "链接"); ok {
		if m := trailingParenRe.FindStringSubmatch(v); m != nil {
			cat.Path = stripRelPrefix(strings.TrimSpace(m[1]))
		}
	}
}

// splitTags 按中日文顿号、半角/全角逗号切分标签，逐项去空白并丢弃空项。
func splitTags(v string) []string {
	parts := tagSplitRe.Split(v, -1)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
