package config

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the environment-driven configuration of the service.
type Config struct {
	Env     string
	DBType  string // sqlite or postgres
	DBPath  string // sqlite only
	DBHost  string
	DBPort  string
	DBUser  string
	DBPass  string
	DBName  string
	SiteURL string // base URL used when composing permalinks

	RedisAddr    string
	CacheCodec   string // nop, gzip, brotli, lz4
	KafkaBrokers string // empty disables event publishing

	// Post types tracked by the prominent-words sweep job.
	ProminentWordsPostTypes []string
}

func LoadConfig() *Config {
	cnf := &Config{
		Env:          getenv("ENV", "development"),
		DBType:       getenv("DB_TYPE", "sqlite"),
		DBPath:       getenv("DB_PATH", ".db/indexable.db"),
		DBHost:       getenv("DB_HOST", "localhost"),
		DBPort:       getenv("DB_PORT", "5432"),
		DBUser:       getenv("DB_USER", "postgres"),
		DBPass:       getenv("DB_PASS", ""),
		DBName:       getenv("DB_NAME", "indexable"),
		SiteURL:      getenv("SITE_URL", "http://localhost:8080"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		CacheCodec:   getenv("CACHE_CODEC", "gzip"),
		KafkaBrokers: getenv("KAFKA_BROKERS", ""),

		ProminentWordsPostTypes: []string{"post", "page"},
	}

	return cnf
}

// GetDb opens the database configured by cnf. Panics on failure, the service
// cannot run without a database.
func GetDb(cnf *Config) *gorm.DB {
	var err error
	var db *gorm.DB

	switch cnf.DBType {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cnf.DBHost, cnf.DBPort, cnf.DBUser, cnf.DBPass, cnf.DBName)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		db, err = gorm.Open(sqlite.Open(cnf.DBPath), &gorm.Config{})
	}

	if err != nil {
		logrus.Fatalf("error connecting to the database: %v", err)
	}

	return db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
