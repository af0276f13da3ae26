package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}
type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // 非空时同时写文件并切割
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

// AdminUser 管理端账号（密码为 bcrypt 哈希）
type AdminUser struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	SeedSample         bool
	LogLevel           string
}

// Directory 目录浏览相关配置
type Directory struct {
	Source        string `mapstructure:"source"` // db | url | file
	DataURL       string `mapstructure:"data_url"`
	DataFile      string `mapstructure:"data_file"`
	APIBaseURL    string `mapstructure:"api_base_url"`
	UndoWindowSec int    `mapstructure:"undo_window_sec"`
	SessionTTLMin int    `mapstructure:"session_ttl_min"`
	CacheTTLSec   int    `mapstructure:"cache_ttl_sec"`
}

type Config struct {
	App       App
	Log       Log
	JWT       JWT
	Admin     AdminUser `mapstructure:"admin"`
	DB        DB
	Redis     Redis     `mapstructure:"redis"`
	Directory Directory `mapstructure:"directory"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "emptycup-directory")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 5001)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 5002)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSizeMB", 100)
	v.SetDefault("log.maxBackups", 3)
	v.SetDefault("log.maxAgeDays", 7)
	v.SetDefault("log.compress", true)

	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.issuer", "emptycup")
	v.SetDefault("jwt.accessTokenTTLMin", 120)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password_hash", "")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "emptycup.db")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.seedSample", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("directory.source", "db")
	v.SetDefault("directory.data_url", "")
	v.SetDefault("directory.data_file", "./data/listings.json")
	v.SetDefault("directory.api_base_url", "http://localhost:5001/api")
	v.SetDefault("directory.undo_window_sec", 5)
	v.SetDefault("directory.session_ttl_min", 30)
	v.SetDefault("directory.cache_ttl_sec", 60)
}

// Load 配置文件可缺省（全部走默认值 + APP_ 环境变量）；文件存在但格式错误则直接退出
func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return c
}

func Read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		log.Printf("[config] %s not found, using defaults", path)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
