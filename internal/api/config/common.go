package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Instagram InstagramConfig `mapstructure:"instagram"`
	Store     StoreConfig     `mapstructure:"store"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Tracking  TrackingConfig  `mapstructure:"tracking"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// InstagramConfig Graph API 配置
type InstagramConfig struct {
	GraphURL         string `mapstructure:"graph_url"`
	APIVersion       string `mapstructure:"api_version"`
	AccessToken      string `mapstructure:"access_token"`
	BusinessID       string `mapstructure:"business_id"`
	MediaLimit       int    `mapstructure:"media_limit"`
	RecentMediaLimit int    `mapstructure:"recent_media_limit"`
	Timeout          int    `mapstructure:"timeout"`
}

// HasCredentials access token 与 business id 均已配置
func (c InstagramConfig) HasCredentials() bool {
	return c.AccessToken != "" && c.BusinessID != ""
}

// StoreConfig 粉丝历史存储配置
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	FilePath  string `mapstructure:"file_path"`
	Retention int    `mapstructure:"retention"`
}

const (
	StoreDriverMemory = "memory"
	StoreDriverFile   = "file"
	StoreDriverRedis  = "redis"
	StoreDriverMySQL  = "mysql"
	StoreDriverMongo  = "mongo"
)

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// TrackingConfig 定时记录粉丝数的账号
type TrackingConfig struct {
	Cron      string   `mapstructure:"cron"`
	Usernames []string `mapstructure:"usernames"`
}
