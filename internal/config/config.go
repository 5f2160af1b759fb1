// Package config 提供配置管理
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	App     AppConfig     `yaml:"app"`
	Solver  SolverConfig  `yaml:"solver"`
	Lattice LatticeConfig `yaml:"lattice"`
	Store   StoreConfig   `yaml:"store"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string `yaml:"name"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
}

// SolverConfig CP-SAT 求解器配置
type SolverConfig struct {
	MaxTimeSeconds int `yaml:"max_time_seconds"`
	Workers        int `yaml:"workers"`
}

// LatticeConfig 分派格点规模限制
type LatticeConfig struct {
	MaxCells int `yaml:"max_cells"` // len(employees)*len(days)*len(shifts) 上限
}

// StoreConfig 任务存储配置（外部任务登记表，C9 依赖的协作方）
type StoreConfig struct {
	Driver          string        `yaml:"driver"` // memory/postgres
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// ConnString 返回 Postgres 连接字符串，优先使用显式配置的 DSN
func (c *StoreConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"), getEnvInt("DB_PORT", 5432),
		getEnv("DB_USER", "rosterc"), getEnv("DB_PASSWORD", "rosterc"),
		getEnv("DB_NAME", "rosterc"), getEnv("DB_SSL_MODE", "disable"),
	)
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "rosterc"),
			Env:      getEnv("APP_ENV", "development"),
			LogLevel: getEnv("APP_LOG_LEVEL", "info"),
		},
		Solver: SolverConfig{
			MaxTimeSeconds: getEnvInt("SOLVER_MAX_TIME_SECONDS", 30),
			Workers:        getEnvInt("SOLVER_WORKERS", 8),
		},
		Lattice: LatticeConfig{
			MaxCells: getEnvInt("LATTICE_MAX_CELLS", 2_000_000),
		},
		Store: StoreConfig{
			Driver:          getEnv("STORE_DRIVER", "memory"),
			DSN:             getEnv("STORE_DSN", ""),
			MaxOpenConns:    getEnvInt("STORE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("STORE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("STORE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
	}

	return cfg, nil
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// 辅助函数
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
