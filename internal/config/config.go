// Package config 載入服務設定
//
// 優先順序: 環境變數 (含 .env) > config.yaml > 預設值
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-rinha-ledger/pkg/mysql"
)

// 帳戶來源
const (
	SeedSourceStatic = "static"
	SeedSourceMySQL  = "mysql"
)

type Config struct {
	HTTP            HTTPConfig    `yaml:"http"`
	GRPC            GRPCConfig    `yaml:"grpc"`
	Log             LogConfig     `yaml:"log"`
	Seed            SeedConfig    `yaml:"seed"`
	MySQL           mysql.Config  `yaml:"mysql"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type GRPCConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type SeedConfig struct {
	// Source: "static" 使用 Accounts，"mysql" 從資料庫讀取
	Source   string          `yaml:"source"`
	Accounts []AccountConfig `yaml:"accounts"`
}

type AccountConfig struct {
	ID    uint8 `yaml:"id"`
	Limit int64 `yaml:"limit"`
}

// Default 預設設定: 五個固定帳戶，HTTP :3000，gRPC :50051
func Default() Config {
	seeds := domain.DefaultAccountSeeds()
	accounts := make([]AccountConfig, 0, len(seeds))
	for _, s := range seeds {
		accounts = append(accounts, AccountConfig{ID: s.ID, Limit: s.Limit})
	}
	return Config{
		HTTP: HTTPConfig{Addr: ":3000"},
		GRPC: GRPCConfig{Enabled: true, Addr: ":50051"},
		Log:  LogConfig{Level: "info"},
		Seed: SeedConfig{
			Source:   SeedSourceStatic,
			Accounts: accounts,
		},
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadEnvFile 載入 .env，檔案不存在不算錯誤
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load 讀取設定檔並套用環境變數
//
// 參數:
//
//	path: yaml 設定檔路徑，不存在時使用預設值
//
// 回傳:
//
//	Config: 已補全並驗證過的設定
//	error: 檔案格式錯誤、環境變數格式錯誤或驗證失敗
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// 沒有設定檔就用預設值
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	// 補全 MySQL 預設配置 (如果 yaml 沒寫)
	cfg.MySQL.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 檢查設定是否可用
func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("config: http.addr is required")
	}
	if c.GRPC.Enabled && c.GRPC.Addr == "" {
		return errors.New("config: grpc.addr is required when grpc is enabled")
	}
	switch c.Seed.Source {
	case SeedSourceStatic:
		if len(c.Seed.Accounts) == 0 {
			return errors.New("config: seed.accounts must not be empty")
		}
		for _, a := range c.Seed.Accounts {
			if a.Limit < 0 {
				return fmt.Errorf("config: account %d: %w", a.ID, domain.ErrNegativeLimit)
			}
		}
	case SeedSourceMySQL:
		if c.MySQL.Host == "" || c.MySQL.DBName == "" {
			return errors.New("config: mysql.host and mysql.dbname are required for mysql seed source")
		}
	default:
		return fmt.Errorf("config: unknown seed source %q", c.Seed.Source)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("config: shutdown_timeout must be positive")
	}
	return nil
}

// Seeds 轉成 domain 物件
func (c SeedConfig) Seeds() []domain.AccountSeed {
	seeds := make([]domain.AccountSeed, 0, len(c.Accounts))
	for _, a := range c.Accounts {
		seeds = append(seeds, domain.AccountSeed{ID: a.ID, Limit: a.Limit})
	}
	return seeds
}

func applyEnv(cfg *Config) error {
	setString(&cfg.HTTP.Addr, "LEDGER_HTTP_ADDR")
	setString(&cfg.GRPC.Addr, "LEDGER_GRPC_ADDR")
	setString(&cfg.Log.Level, "LEDGER_LOG_LEVEL")
	setString(&cfg.Seed.Source, "LEDGER_SEED_SOURCE")
	setString(&cfg.MySQL.Host, "MYSQL_HOST")
	setString(&cfg.MySQL.User, "MYSQL_USER")
	setString(&cfg.MySQL.Password, "MYSQL_PASSWORD")
	setString(&cfg.MySQL.DBName, "MYSQL_DBNAME")

	if err := setBool(&cfg.GRPC.Enabled, "LEDGER_GRPC_ENABLED"); err != nil {
		return err
	}
	if err := setBool(&cfg.Log.Pretty, "LEDGER_LOG_PRETTY"); err != nil {
		return err
	}
	if err := setDuration(&cfg.ShutdownTimeout, "LEDGER_SHUTDOWN_TIMEOUT"); err != nil {
		return err
	}
	if v, ok := lookup("MYSQL_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: MYSQL_PORT: %w", err)
		}
		cfg.MySQL.Port = port
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = d
	return nil
}
