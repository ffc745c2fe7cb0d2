package tester

import (
	"fmt"
	"os"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/seoworks/indexable/internal/cache"
	"github.com/seoworks/indexable/internal/compress"
	"github.com/seoworks/indexable/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Each test process gets its own directory so package tests can run in
// parallel against separate database files.
var testPath = fmt.Sprintf("../../.test/%d/", os.Getpid())

var (
	db *gorm.DB
)

func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	err := os.MkdirAll(testPath+"/db", os.ModePerm)
	if err != nil {
		panic(err)
	}

	db, err = gorm.Open(sqlite.Open(testPath+"db/indexable.db"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

func RemoveDBFile() {
	err := os.RemoveAll(testPath)
	if err != nil {
		panic(err)
	}
}

// Cache returns an indexable cache backed by an in-process miniredis.
func Cache() cache.IndexableCache {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return cache.NewRedisIndexableCacheWithClient(client, compress.NewNop())
}
