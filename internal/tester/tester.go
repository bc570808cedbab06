package tester

import (
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/blacksmith/atlas/internal/cache"
	"github.com/blacksmith/atlas/internal/model"
)

const (
	testPath = "../../.test/"
)

var (
	db *gorm.DB
)

func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ATLAS_ENV", "test")

	err := os.MkdirAll(testPath+"db", os.ModePerm)
	if err != nil {
		panic(err)
	}

	db, err = gorm.Open(sqlite.Open(testPath+"db/atlas.db"), &gorm.Config{})
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

// Cache returns a process-local asset cache so service tests do not
// need a running redis.
func Cache() cache.AssetCache {
	return cache.NewMemoryAssetCache()
}

// LibraryRoot creates a scratch library root under the test path.
func LibraryRoot() string {
	root := testPath + "library"
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		panic(err)
	}
	return root
}
