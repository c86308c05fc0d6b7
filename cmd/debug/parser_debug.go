package main

import (
	"Blog_Manager/pkg/markdown"
	"encoding/json"
	"fmt"
)

// 快速验证内容解析器的小工具：覆盖相册、序号排序和封面回退。
const sampleContent = `## 独立开发者
### PyCarrot
描述：测试
技术栈：Python
状态：开发中
链接：[GitHub](https://x.com)

## 旅行相册
数量：3
### 照片B
序号：2
拍摄地点：拉萨
### 照片A
序号：1

## 书
作者：某人
ISBN：9787536692930
封面：![封面](../images/book.jpg)
`

func main() {
	items := markdown.ParseContent(sampleContent)
	out, _ := json.MarshalIndent(items, "", "  ")
	fmt.Println(string(out))

	fmt.Println("slug(萝卜哥 Blog!!) =", markdown.Slugify("萝卜哥 Blog!!"))
}
