// Package render 把条目里的自由文本字段（日记正文、评价等）
// 转换成 HTML，供 API 按需返回给前端渲染层。
package render

import (
	"bytes"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

// ToHTML 把一段 markdown 文本渲染为 HTML。空输入返回空串。
func ToHTML(source string) (string, error) {
	if source == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
