package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleSiteConfig = `# 站点配置

## 博客信息

博客名称：萝卜哥 Blog
网站描述：一个独立开发者的自留地
标语：保持好奇
版权：© 2025 萝卜哥
网站图标：../images/favicon.ico

## 作者信息

姓名：萝卜哥
头像：![头像](../images/avatar.png)
Email：<carrot@example.com>
Github：[主页](https://github.com/carrot)
标签：独立开发、摄影，阅读

## 展示类别

### 独立开发
样式类型：project
展示序号：1
强调色：#ff6600
链接：[独立开发](../content/projects.md)

### 游戏
样式类型：game
展示序号：2
链接：[游戏](../content/games.md)

### 随笔
链接：[随笔](../content/essays.md)

### 书架
样式类型：book
展示序号：abc
链接：[书架](../content/books.md)
`

func TestParseConfig_BlogInfo(t *testing.T) {
	site := ParseConfig(sampleSiteConfig)
	require.Equal(t, "萝卜哥 Blog", site.BlogInfo.Title)
	require.Equal(t, "一个独立开发者的自留地", site.BlogInfo.Desc)
	require.Equal(t, "保持好奇", site.BlogInfo.Slogan)
	require.Equal(t, "© 2025 萝卜哥", site.BlogInfo.Copyright)
	require.Equal(t, "images/favicon.ico", site.BlogInfo.Favicon)
}

func TestParseConfig_AuthorInfo(t *testing.T) {
	site := ParseConfig(sampleSiteConfig)
	require.Equal(t, "萝卜哥", site.AuthorInfo.Name)
	// 图片语法解包且去掉 "../"
	require.Equal(t, "images/avatar.png", site.AuthorInfo.Avatar)
	// <...> 解包
	require.Equal(t, "carrot@example.com", site.AuthorInfo.Email)
	// 从链接语法中取 URL
	require.Equal(t, "https://github.com/carrot", site.AuthorInfo.Github)
	// 顿号和全角逗号混用
	require.Equal(t, []string{"独立开发", "摄影", "阅读"}, site.AuthorInfo.Tags)
}

func TestParseConfig_Categories(t *testing.T) {
	site := ParseConfig(sampleSiteConfig)
	require.Len(t, site.Categories, 4)

	// 显式序号 1、2 在前；"随笔"（无序号）和 "书架"（非数字序号）
	// 都落在默认 99 档，按出现顺序排列
	require.Equal(t, "独立开发", site.Categories[0].Title)
	require.Equal(t, "游戏", site.Categories[1].Title)
	require.Equal(t, "随笔", site.Categories[2].Title)
	require.Equal(t, "书架", site.Categories[3].Title)

	proj := site.Categories[0]
	require.Equal(t, "project", proj.Type)
	require.Equal(t, 1, proj.Order)
	require.Equal(t, "#ff6600", proj.Color)
	require.Equal(t, "content/projects.md", proj.Path)

	essays := site.Categories[2]
	require.Equal(t, "default", essays.Type)
	require.Equal(t, 99, essays.Order)

	books := site.Categories[3]
	require.Equal(t, 99, books.Order)
}

func TestParseConfig_SlugIDs(t *testing.T) {
	site := ParseConfig(sampleSiteConfig)
	require.Equal(t, "独立开发", site.Categories[0].ID)
	require.Equal(t, Slugify("游戏"), site.Categories[1].ID)
}

func TestParseConfig_EmptyInput(t *testing.T) {
	site := ParseConfig("")
	require.Empty(t, site.Categories)
	require.Empty(t, site.BlogInfo.Title)
}

func TestParseConfig_UnknownLinesIgnored(t *testing.T) {
	site := ParseConfig("## 博客信息\n随便写点什么\n博客名称：X\n> 引用\n")
	require.Equal(t, "X", site.BlogInfo.Title)
}

func TestSiteConfig_CategoryByID_LastWriterWins(t *testing.T) {
	text := "## 展示类别\n### 游戏\n样式类型：game\n### 游戏\n样式类型：project\n"
	site := ParseConfig(text)
	require.Len(t, site.Categories, 2)
	cat := site.CategoryByID("游戏")
	require.NotNil(t, cat)
	require.Equal(t, "project", cat.Type)
}
