package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL"`
	Postgres Postgres
	Redis    Redis
	Cache    Cache
	Jobs     Jobs
	Reports  Reports
}

type Postgres struct {
	Host            string `env:"PG_HOST"`
	Port            int    `env:"PG_PORT"`
	DbName          string `env:"PG_DB_NAME"`
	Password        string `env:"PG_PASSWORD"`
	User            string `env:"PG_USER"`
	MaxOpenConns    int    `env:"PG_MAX_OPEN_CONNS"`
	ConnMaxLifetime int    `env:"PG_CONN_MAX_LIFETIME"`
	MaxIdleConns    int    `env:"PG_MAX_IDLE_CONNS"`
	ConnMaxIdleTime int    `env:"PG_CONN_MAX_IDLE_TIME"`
	MigrationDir    string `env:"PG_MIGRATION_DIR"`
}

type Redis struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"`
}

type Cache struct {
	SummaryExpiration      time.Duration `env:"CACHE_SUMMARY_EXPIRATION"`
	BucketDetailExpiration time.Duration `env:"CACHE_BUCKET_DETAIL_EXPIRATION"`
}

type Jobs struct {
	SnapshotInterval  time.Duration `env:"SNAPSHOT_JOB_INTERVAL"`
	PurgeInterval     time.Duration `env:"PURGE_JOB_INTERVAL"`
	SnapshotRetention time.Duration `env:"SNAPSHOT_RETENTION"`
	ReportCrontab     string        `env:"REPORT_JOB_CRONTAB"`
}

type Reports struct {
	Dir string `env:"REPORTS_DIR"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}
