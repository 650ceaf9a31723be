package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用程序配置结构体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Evaluator EvaluatorConfig `mapstructure:"evaluator"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`          // 服务器主机
	Port         int           `mapstructure:"port"`          // 服务器端口
	Mode         string        `mapstructure:"mode"`          // gin运行模式：debug, release, test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`  // 读超时
	WriteTimeout time.Duration `mapstructure:"write_timeout"` // 写超时
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`       // 日志级别
	File       string `mapstructure:"file"`        // 日志文件路径，为空时只输出到标准输出
	MaxSize    int    `mapstructure:"max_size"`    // 单个日志文件最大尺寸（MB）
	MaxBackups int    `mapstructure:"max_backups"` // 保留的旧日志文件数量
	MaxAge     int    `mapstructure:"max_age"`     // 旧日志保留天数
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Enable   bool   `mapstructure:"enable"`   // 是否启用缓存
	Type     string `mapstructure:"type"`     // 缓存类型：memory 或 redis
	Address  string `mapstructure:"address"`  // Redis地址
	Password string `mapstructure:"password"` // Redis密码
	DB       int    `mapstructure:"db"`       // Redis数据库
	TTL      int    `mapstructure:"ttl"`      // 缓存TTL（秒）
}

// EvaluatorConfig 评估服务配置
type EvaluatorConfig struct {
	MaxContentBytes int   `mapstructure:"max_content_bytes"` // 单篇文章最大字节数
	MaxUploadBytes  int64 `mapstructure:"max_upload_bytes"`  // 上传文档请求体最大字节数
	MaxBatchSize    int   `mapstructure:"max_batch_size"`    // 批量评估最大篇数
	Workers         int   `mapstructure:"workers"`           // 批量评估并发数
	Preview         bool  `mapstructure:"preview"`           // 是否默认返回HTML预览
}

// Load 从文件和环境变量加载配置
func Load(configPath string) (*Config, error) {
	var config Config

	// .env文件不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// 设置默认配置路径
	if configPath == "" {
		configPath = "config.yaml" // 默认在当前目录寻找config.yaml
	}

	// 初始化viper
	v := viper.New()
	v.SetConfigFile(configPath)

	// 先设置默认值，写出的默认配置文件才会包含它们
	setDefaults(v)

	// 尝试读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: Config file not found at %s, using defaults", configPath)
			// 创建默认配置文件
			dir := filepath.Dir(configPath)
			if err := os.MkdirAll(dir, 0755); err == nil {
				if err := v.WriteConfigAs(configPath); err != nil {
					log.Printf("Warning: Could not write default config to %s: %v", configPath, err)
				}
			}
		} else {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
	} else {
		log.Printf("Using config file: %s", v.ConfigFileUsed())
	}

	// 支持环境变量覆盖，例如 CACHE_TYPE=redis
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 解析配置到结构体
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	resConfig := processEnvironmentVariables(&config)
	if err := resConfig.Validate(); err != nil {
		return nil, err
	}

	return resConfig, nil
}

// Default 返回只包含默认值的配置
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		// 默认值由setDefaults固定给出，解析失败属于编程错误
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return &config
}

// processEnvironmentVariables 处理配置项中形如${VAR}的环境变量引用
func processEnvironmentVariables(cfg *Config) *Config {
	cfg.Cache.Password = expandEnv(cfg.Cache.Password)
	cfg.Cache.Address = expandEnv(cfg.Cache.Address)
	cfg.Log.File = expandEnv(cfg.Log.File)
	return cfg
}

func expandEnv(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envVal := os.Getenv(envVar); envVal != "" {
			return envVal
		}
	}
	return value
}

// Validate 检查配置取值是否合法
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Cache.Type {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported cache type: %s", c.Cache.Type)
	}
	if c.Evaluator.Workers <= 0 {
		return fmt.Errorf("evaluator workers must be positive, got %d", c.Evaluator.Workers)
	}
	if c.Evaluator.MaxBatchSize <= 0 {
		return fmt.Errorf("evaluator max_batch_size must be positive, got %d", c.Evaluator.MaxBatchSize)
	}
	return nil
}

// Address 返回服务监听地址
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// setDefaults 设置配置的默认值
func setDefaults(v *viper.Viper) {
	// 服务器默认配置
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")

	// 日志默认配置
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)

	// 缓存默认配置
	v.SetDefault("cache.enable", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.address", "localhost:6379")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", 3600) // 1小时

	// 评估服务默认配置
	v.SetDefault("evaluator.max_content_bytes", 1<<20) // 1MB
	v.SetDefault("evaluator.max_upload_bytes", 10<<20) // 10MB
	v.SetDefault("evaluator.max_batch_size", 50)
	v.SetDefault("evaluator.workers", 4)
	v.SetDefault("evaluator.preview", false)
}
