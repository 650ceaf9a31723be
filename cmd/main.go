package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/seo-evaluator/api"
	"github.com/fyerfyer/seo-evaluator/api/handler"
	"github.com/fyerfyer/seo-evaluator/api/middleware"
	appconfig "github.com/fyerfyer/seo-evaluator/config"
	"github.com/fyerfyer/seo-evaluator/internal/cache"
	"github.com/fyerfyer/seo-evaluator/internal/services"
)

// 命令行参数，显式指定时覆盖配置文件中的值
type flags struct {
	ConfigFile string
	Port       int
	Mode       string
	LogLevel   string
	LogFile    string
	CacheType  string
	RedisAddr  string
	Workers    int
}

func main() {
	f := parseFlags()

	cfg := appconfig.Default()
	if f.ConfigFile != "" {
		loaded, err := appconfig.Load(f.ConfigFile)
		if err != nil {
			log.Printf("Warning: Failed to load config file: %v, using defaults", err)
		} else {
			cfg = loaded
		}
	}
	applyFlags(cfg, f)

	gin.SetMode(cfg.Server.Mode)

	logger := middleware.GetLogger()
	if err := middleware.ConfigureLogger(middleware.LogOptions{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}); err != nil {
		logger.Fatalf("Failed to configure logger: %v", err)
	}
	logger.Info("Starting SEO evaluator...")

	opts := []services.EvaluationOption{
		services.WithLogger(logger),
		services.WithMaxContentBytes(cfg.Evaluator.MaxContentBytes),
		services.WithMaxBatchSize(cfg.Evaluator.MaxBatchSize),
		services.WithWorkers(cfg.Evaluator.Workers),
		services.WithCacheTTL(time.Duration(cfg.Cache.TTL) * time.Second),
	}

	cacheType := "disabled"
	if cfg.Cache.Enable {
		resultCache, err := setupCache(cfg)
		if err != nil {
			logger.Fatalf("Failed to initialize cache: %v", err)
		}
		defer resultCache.Close()
		opts = append(opts, services.WithCache(resultCache))
		cacheType = cfg.Cache.Type
	}

	evalService := services.NewEvaluationService(opts...)
	evalHandler := handler.NewEvaluationHandler(evalService,
		handler.WithDefaultPreview(cfg.Evaluator.Preview),
		handler.WithCacheType(cacheType),
		handler.WithMaxUploadBytes(cfg.Evaluator.MaxUploadBytes),
	)

	r, err := api.SetupRouter(evalHandler)
	if err != nil {
		logger.Fatalf("Failed to set up router: %v", err)
	}

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"address": cfg.Address(),
			"cache":   cacheType,
			"workers": cfg.Evaluator.Workers,
		}).Info("Server is running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待中断信号优雅关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func parseFlags() flags {
	f := flags{}

	flag.StringVar(&f.ConfigFile, "config", "", "Path to config file")
	flag.IntVar(&f.Port, "port", 8080, "Server port")
	flag.StringVar(&f.Mode, "mode", "release", "Run mode (debug/release)")
	flag.StringVar(&f.LogLevel, "log-level", "info", "Log level (debug/info/warn/error)")
	flag.StringVar(&f.LogFile, "log-file", "", "Rotating log file path")
	flag.StringVar(&f.CacheType, "cache", "memory", "Cache type (memory/redis)")
	flag.StringVar(&f.RedisAddr, "redis-addr", "localhost:6379", "Redis address for the result cache")
	flag.IntVar(&f.Workers, "workers", 4, "Concurrent workers for batch evaluation")

	flag.Parse()
	return f
}

// applyFlags 只用显式指定的命令行参数覆盖配置
func applyFlags(cfg *appconfig.Config, f flags) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "port":
			cfg.Server.Port = f.Port
		case "mode":
			cfg.Server.Mode = f.Mode
		case "log-level":
			cfg.Log.Level = f.LogLevel
		case "log-file":
			cfg.Log.File = f.LogFile
		case "cache":
			cfg.Cache.Type = f.CacheType
		case "redis-addr":
			cfg.Cache.Address = f.RedisAddr
		case "workers":
			cfg.Evaluator.Workers = f.Workers
		}
	})
}

func setupCache(cfg *appconfig.Config) (cache.Cache, error) {
	return cache.NewCache(cache.Config{
		Type:            cfg.Cache.Type,
		Namespace:       cache.EvaluationPrefix,
		RedisAddr:       cfg.Cache.Address,
		RedisPassword:   cfg.Cache.Password,
		RedisDB:         cfg.Cache.DB,
		DefaultTTL:      time.Duration(cfg.Cache.TTL) * time.Second,
		CleanupInterval: 10 * time.Minute,
	})
}
