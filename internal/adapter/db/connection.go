package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"taskboard/internal/config"
)

const connectTimeout = 10 * time.Second

// ConnectDB opens the MySQL pool and checks it answers.
func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	params := conf.DbParams
	if params == "" {
		params = "parseTime=true&multiStatements=true"
	}

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect mysql %s:%s/%s: %w", conf.DbHost, conf.DbPort, conf.DbName, err)
	}

	if conf.DbMaxOpenConns > 0 {
		db.SetMaxOpenConns(conf.DbMaxOpenConns)
	}
	if conf.DbMaxIdleConns > 0 {
		db.SetMaxIdleConns(conf.DbMaxIdleConns)
	}
	if conf.DbConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(conf.DbConnMaxLifetime)
	}

	return db, nil
}
