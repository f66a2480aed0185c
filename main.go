package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spaceshooter/config"
	"spaceshooter/game"
	"spaceshooter/server"
)

// 入口：启动 HTTP + WebSocket 服务，并启动共享帧时钟
func main() {
	var cfgPath, addr string
	flag.StringVar(&cfgPath, "config", "", "path to YAML config file")
	flag.StringVar(&addr, "addr", "", "server listen address, overrides config, e.g. :8080")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	if addr != "" {
		cfg.Listen.Addr = addr
	}
	// 使用第三方 zap 日志库写入日志文件（带滚动）
	if err := server.InitLogger(cfg.Logging); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	clock := game.NewFrameClock(cfg.Game.FrameRate)
	clock.Start()
	defer clock.Close()

	app := server.NewServer(cfg, clock, server.Log)
	defer app.Close()

	srv := &http.Server{Addr: cfg.Listen.Addr, Handler: app.Handler()}

	go func() {
		server.Log.Infof("SpaceShooter listening on %s; frame interval %s", cfg.Listen.Addr, clock.Interval())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		server.Log.Warnf("shutdown: %v", err)
	}
}
