// Package db はGORMによるデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"biotech_monitor/internal/feature/watchlist/domain/entity"
)

// Config holds database connection settings.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	// SQLitePath is the fallback database file used when Host is empty.
	SQLitePath string
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		User:       os.Getenv("DB_USER"),
		Password:   os.Getenv("DB_PASSWORD"),
		Name:       os.Getenv("DB_NAME"),
		Host:       os.Getenv("DB_HOST"),
		Port:       os.Getenv("DB_PORT"),
		SQLitePath: os.Getenv("DB_PATH"),
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "data/watchlist.db"
	}
	return cfg
}

// BuildDSN はPostgreSQL接続用のDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

// ConnectWithRetry はタイムアウトまで3秒間隔で接続をリトライします。
// openerを差し替え可能にしてテストから接続処理を検証できるようにしています。
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(dsn string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB はデータベース接続を開きます。DB_HOST が設定されていれば
// PostgreSQL、なければファイルベースのSQLiteにフォールバックします。
// 単一プロセスの監視ツールではSQLiteで十分です。
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	var (
		db  *gorm.DB
		err error
	)

	if cfg.Host != "" {
		db, err = ConnectWithRetry(BuildDSN(cfg), 60*time.Second, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open sqlite database: %v", err)
		}
	}

	if os.Getenv("RUN_MIGRATIONS") != "false" {
		if err := db.AutoMigrate(&entity.Ticker{}); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
