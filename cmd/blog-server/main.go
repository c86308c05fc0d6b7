package main

import (
	"Blog_Manager/config"
	"Blog_Manager/internal/api"
	"Blog_Manager/internal/task"
	"Blog_Manager/pkg/content"
	"Blog_Manager/pkg/logger"
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"
)

func main() {
	// --- 1. 初始化 ---
	if err := config.LoadConfig("."); err != nil {
		log.Fatalf("FATAL: 无法加载配置: %v", err)
	}
	if err := logger.InitLogger(); err != nil {
		log.Fatalf("FATAL: 无法初始化日志: %v", err)
	}
	slog.Info("应用启动")
	defer slog.Info("应用关闭")

	// --- 2. 创建数据服务并加载站点配置 ---
	// 站点配置加载失败是致命的：没有类别元信息，后面什么都做不了。
	service, err := content.NewService(config.C.Content, slog.Default())
	if err != nil {
		slog.Error("FATAL: 无法创建内容数据服务", "error", err)
		os.Exit(1)
	}
	site, err := service.LoadSiteConfig(context.Background())
	if err != nil {
		slog.Error("FATAL: 无法加载站点配置", "error", err)
		os.Exit(1)
	}
	slog.Info("站点配置加载成功", "类别数", len(site.Categories))

	// --- 3. 创建任务管理器，按需预热 ---
	taskManager := task.NewManager(service, site)
	slog.Info("任务管理器创建成功")

	if config.C.Content.PreloadOnStart {
		go func() {
			slog.Info("开始后台预加载全部类别内容...")
			service.PreloadCategories(context.Background(), site.Categories)
			slog.Info("类别内容预加载完成")
		}()
	}

	// --- 4. 设置并启动HTTP服务器 ---
	router := api.RegisterRoutes(taskManager, service, site)

	server := &http.Server{
		Addr:         config.C.Server.Port,
		Handler:      router,
		ReadTimeout:  config.C.Server.Timeout,
		WriteTimeout: config.C.Server.Timeout,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("HTTP服务器正在启动...", "地址", config.C.Server.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("无法启动HTTP服务器", "error", err)
		os.Exit(1)
	}
}
