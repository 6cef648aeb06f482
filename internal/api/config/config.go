package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// 兼容旧部署使用的环境变量名
var legacyEnv = map[string]string{
	"instagram.access_token": "IG_ACCESS_TOKEN",
	"instagram.business_id":  "IG_BUSINESS_ID",
	"server.port":            "PORT",
}

// LoadConfig 从 .env、配置文件与环境变量加载配置并填充到 Cfg
func LoadConfig() error {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	cfg, err := load(v)
	if err != nil {
		return err
	}
	Cfg = cfg

	return nil
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost:8080",
		"http://localhost:3000",
		"https://social-graph-visualizer.vercel.app",
		`~\.lovable\.app$`,
		`~\.vercel\.app$`,
	})

	v.SetDefault("instagram.graph_url", "https://graph.facebook.com")
	v.SetDefault("instagram.api_version", "v19.0")
	v.SetDefault("instagram.access_token", "")
	v.SetDefault("instagram.business_id", "")
	v.SetDefault("instagram.media_limit", 25)
	v.SetDefault("instagram.recent_media_limit", 10)
	v.SetDefault("instagram.timeout", 15)

	v.SetDefault("store.driver", StoreDriverMemory)
	v.SetDefault("store.file_path", "./data/follower_history.json")
	v.SetDefault("store.retention", 100)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.max_open", 20)
	v.SetDefault("database.max_lifetime", 60)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("mongo.url", "")
	v.SetDefault("mongo.database", "instalytics")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file", "")
	v.SetDefault("tracking.cron", "0 0 */6 * * *")
}
