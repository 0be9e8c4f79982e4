// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mheshimiwa-watch-go/internal/config"
	"mheshimiwa-watch-go/internal/handler"
	"mheshimiwa-watch-go/internal/middleware"
	"mheshimiwa-watch-go/internal/repository"
	"mheshimiwa-watch-go/internal/service"
	"mheshimiwa-watch-go/pkg/database"
	"mheshimiwa-watch-go/pkg/llm"
	"mheshimiwa-watch-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 1. 加载 .env（若存在）与配置
	_ = godotenv.Load()
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库并确保表结构存在
	database.InitMySQL(cfg.Database.MySQL)
	if err := database.EnsureSchema(database.DB); err != nil {
		log.Fatal("数据库表结构初始化失败", err)
	}
	log.Info("数据库表结构初始化成功")

	// 4. 初始化 Repository 和 Service (依赖注入)
	chatRepo := repository.NewChatRepository(database.DB)
	llmClient := llm.NewClient(cfg.LLM)
	chatService := service.NewChatService(llmClient, chatRepo)
	historyService := service.NewHistoryService(chatRepo)

	// 5. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 6. 注册路由
	chatHandler := handler.NewChatHandler(chatService)
	historyHandler := handler.NewHistoryHandler(historyService)
	r.POST("/ask", chatHandler.Ask)
	r.GET("/chat-history", historyHandler.ChatHistory)
	r.GET("/session-history/:session_id", historyHandler.SessionHistory)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
