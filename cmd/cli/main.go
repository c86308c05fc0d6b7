package main

import (
	"Blog_Manager/config"
	"Blog_Manager/pkg/content"
	"Blog_Manager/pkg/hasher"
	"Blog_Manager/pkg/markdown"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
)

func main() {
	// --- 1. 定义命令行参数 ---
	action := flag.String("action", "", "要执行的操作: parse-config, parse-content, fetch-site")
	file := flag.String("file", "", "用于 parse-config / parse-content 的本地 markdown 文件")
	categoryID := flag.String("category-id", "", "用于 fetch-site 时只拉取某个类别的内容")

	flag.Parse()

	if *action == "" {
		fmt.Println("错误: 必须提供 -action 参数。")
		flag.Usage()
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// --- 2. 根据 action 参数执行相应的功能 ---
	switch *action {
	case "parse-config":
		data := mustReadFile(*file)
		site := markdown.ParseConfig(string(data))
		printJSON(site)

	case "parse-content":
		data := mustReadFile(*file)
		items := markdown.ParseContent(string(data))
		fmt.Printf("共解析出 %d 个条目，内容指纹: %s\n",
			len(items), hasher.CalculateSHA256FromBytes(data))
		printJSON(items)

	case "fetch-site":
		// 假设 config.yaml 在当前目录
		if err := config.LoadConfig("."); err != nil {
			log.Fatalf("FATAL: 无法加载配置: %v", err)
		}
		service, err := content.NewService(config.C.Content, slog.Default())
		if err != nil {
			slog.Error("FATAL: 无法创建内容数据服务", "error", err)
			os.Exit(1)
		}

		ctx := context.Background()
		site, err := service.LoadSiteConfig(ctx)
		if err != nil {
			slog.Error("加载站点配置失败", "error", err)
			os.Exit(1)
		}

		if *categoryID != "" {
			cat := site.CategoryByID(*categoryID)
			if cat == nil {
				fmt.Printf("错误: 未找到类别 '%s'\n", *categoryID)
				os.Exit(1)
			}
			items := service.LoadCategoryContent(ctx, cat)
			fmt.Printf("--- 类别 '%s' 共 %d 个条目 ---\n", cat.Title, len(items))
			printJSON(items)
			return
		}

		service.PreloadCategories(ctx, site.Categories)
		printJSON(site)

	default:
		fmt.Printf("错误: 未知的 action '%s'\n", *action)
		flag.Usage()
	}
}

func mustReadFile(path string) []byte {
	if path == "" {
		fmt.Println("错误: 该操作需要提供 -file 参数。")
		os.Exit(1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("FATAL: 无法读取文件 '%s': %v", path, err)
	}
	return data
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Error("序列化结果失败", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
