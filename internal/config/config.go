package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	bookService "github.com/zhouzirui/bookshelf/backend/internal/service/book"
)

// ErrUnknownStore is returned when BOOKS_STORE names no known backend.
var ErrUnknownStore = errors.New("unknown store backend")

// StoreKind selects the persistence backend.
type StoreKind string

const (
	StoreFile   StoreKind = "file"
	StoreSQLite StoreKind = "sqlite"
	StoreMemory StoreKind = "memory"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Log     LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Storage: storage, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// StorageConfig 描述图书数据的持久化方式。
type StorageConfig struct {
	Kind       StoreKind
	FilePath   string
	SQLiteDSN  string
	IDStrategy bookService.IDStrategy
}

func loadStorageConfig() (StorageConfig, error) {
	kind := StoreKind(strings.ToLower(getEnvOrDefault("BOOKS_STORE", string(StoreFile))))
	switch kind {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return StorageConfig{}, fmt.Errorf("invalid BOOKS_STORE value %q: %w", kind, ErrUnknownStore)
	}

	strategy, err := bookService.ParseIDStrategy(os.Getenv("BOOKS_ID_STRATEGY"))
	if err != nil {
		return StorageConfig{}, fmt.Errorf("invalid BOOKS_ID_STRATEGY: %w", err)
	}

	return StorageConfig{
		Kind:       kind,
		FilePath:   getEnvOrDefault("BOOKS_FILE", "books.json"),
		SQLiteDSN:  getEnvOrDefault("BOOKS_SQLITE_DSN", "books.db"),
		IDStrategy: strategy,
	}, nil
}

// LogConfig 描述日志输出，File 为空时写到标准输出。
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func loadLogConfig() (LogConfig, error) {
	maxSize, err := parseIntEnvOrDefault("LOG_MAX_SIZE_MB", 10)
	if err != nil {
		return LogConfig{}, err
	}

	maxBackups, err := parseIntEnvOrDefault("LOG_MAX_BACKUPS", 3)
	if err != nil {
		return LogConfig{}, err
	}

	maxAge, err := parseIntEnvOrDefault("LOG_MAX_AGE_DAYS", 28)
	if err != nil {
		return LogConfig{}, err
	}

	compress, err := parseBoolEnv("LOG_COMPRESS", false)
	if err != nil {
		return LogConfig{}, err
	}

	return LogConfig{
		File:       strings.TrimSpace(os.Getenv("LOG_FILE")),
		MaxSizeMB:  maxSize,
		MaxBackups: maxBackups,
		MaxAgeDays: maxAge,
		Compress:   compress,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseIntEnvOrDefault(key string, defaultValue int) (int, error) {
	val, err := parseOptionalIntEnv(key)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return defaultValue, nil
	}
	if *val < 0 {
		return 0, fmt.Errorf("invalid %s value %d: must not be negative", key, *val)
	}
	return *val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
