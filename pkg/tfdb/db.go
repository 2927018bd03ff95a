package tfdb

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteInMemoryDSN is the DSN for a shared in-memory database.
const SqliteInMemoryDSN = "file::memory:?cache=shared"

func MakeMysqlDSNFromEnv() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_DATABASE"))
}

const maxDBRetries = 5

// MustConnectToDB connects to the database named by the TASKFORGE_DB
// environment, defaulting to a local sqlite file. Setting TASKFORGE_DB_DRIVER
// to "mysql" switches to a server database built from the DB_* environment.
// It will attempt the connection maxDBRetries times and call log.Fatalf() if
// it never succeeds, which will cause the server to exit. Between retry
// attempts it sleeps for 3 seconds.
func MustConnectToDB() *gorm.DB {
	var (
		err error
		db  *gorm.DB
	)

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	retryCount := 1
	for {
		db, err = gorm.Open(dialectorFromEnv(), gormConfig)
		switch {
		case err == nil:
			// Connected to db, yay!
			return db
		case retryCount >= maxDBRetries:
			// Retry limit exceeded :-(
			log.Fatalf("Failed to open db: %s", err)
		default:
			// Couldn't connect, so increment count, then wait a bit before trying again.
			retryCount++
			time.Sleep(3 * time.Second)
		}
	}
}

func dialectorFromEnv() gorm.Dialector {
	if os.Getenv("TASKFORGE_DB_DRIVER") == "mysql" {
		return mysql.Open(MakeMysqlDSNFromEnv())
	}

	dsn := os.Getenv("TASKFORGE_DB")
	if dsn == "" {
		dsn = "taskforge.db"
	}

	return sqlite.Open(dsn)
}

// RunMigrations brings the schema up to date for all entities.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&tfmodel.User{},
		&tfmodel.Team{},
		&tfmodel.UserTeamMembership{},
		&tfmodel.Project{},
		&tfmodel.Task{},
		&tfmodel.Notification{},
		&tfmodel.Comment{},
		&tfmodel.Attachment{},
	)
}
