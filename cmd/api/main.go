package main

import (
	"Instalytics/internal/api/config"
	"Instalytics/internal/pkg/cron"
	"Instalytics/internal/pkg/database"
	"Instalytics/internal/pkg/logger"
	"Instalytics/internal/pkg/mongo"
	"Instalytics/internal/pkg/redis"
	"Instalytics/internal/repository"
	"Instalytics/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	// 初始化日志
	logger.InitLogger(cfg.Logger)

	if !cfg.Instagram.HasCredentials() {
		log.Warn("Instagram credentials are not configured, /api/insights will return 500")
	}

	// 数据库连接，仅 mysql 存储需要
	var backends repository.Backends
	if cfg.Store.Driver == config.StoreDriverMySQL {
		dbCfg := cfg.DB
		conn, err := database.NewGormDB(&dbCfg)
		if err != nil {
			log.Error("Fatal error: failed to create database connection", "err", err)
			panic(err)
		}
		backends.DB = conn
	}

	// Redis 连接，redis 存储或配置了地址时启用
	if cfg.Store.Driver == config.StoreDriverRedis || cfg.Redis.Addr != "" {
		client, err := redis.InitRedis(cfg.Redis)
		if err != nil {
			log.Error("Fatal error: failed to create redis connection", "err", err)
			panic(err)
		}
		backends.Redis = client
		defer func() { _ = client.Close() }()
	}

	// MongoDB 连接，仅 mongo 存储需要
	if cfg.Store.Driver == config.StoreDriverMongo {
		mdb, err := mongo.InitMongo(cfg.Mongo)
		if err != nil {
			log.Error("Fatal error: failed to create mongo connection", "err", err)
			panic(err)
		}
		backends.Mongo = mdb
		defer func() { _ = mdb.Client().Disconnect(context.Background()) }()
	}

	// 依赖注入
	app, err := wire.BuildApplication(backends, cfg)
	if err != nil {
		log.Error("Fatal error: failed to create application", "err", err)
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	err = cron.InitCron(app.CronMgr)
	if err != nil {
		log.Error("Fatal error: failed to start cron jobs", "err", err)
		panic(err)
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Cron Jobs stopping...")
		app.CronMgr.Stop()
		return nil
	})

	// HTTP 服务器
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("App exited with error", "err", err)
	}
	log.Info("App exited successfully.")
}
