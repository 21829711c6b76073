package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/starcrawl/star-crawler/cfg"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	initErr error
)

type Postgres struct {
	Config *cfg.Config
	once   sync.Once
	db     *gorm.DB
}

func NewPostgres(config *cfg.Config) (*Postgres, error) {
	return &Postgres{
		Config: config,
	}, nil
}

func (p *Postgres) DSN() string {
	c := p.Config.Postgres
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SslMode,
	)
}

func (p *Postgres) Db() (*gorm.DB, error) {
	p.once.Do(func() {
		// Open connection
		var db *gorm.DB
		db, initErr = gorm.Open(postgres.Open(p.DSN()), &gorm.Config{})
		if initErr != nil {
			return
		}

		// Get sqlDB
		var sqlDB *sql.DB
		sqlDB, initErr = db.DB()
		if initErr != nil {
			return
		}

		// Setting connection pool
		sqlDB.SetMaxIdleConns(p.Config.Postgres.MaxIdleConnection)
		sqlDB.SetMaxOpenConns(p.Config.Postgres.MaxOpenConnection)
		sqlDB.SetConnMaxLifetime(time.Duration(p.Config.Postgres.MaxLifeTimeConnection) * time.Second)

		//
		p.db = db
	})
	return p.db, initErr
}

func (p *Postgres) Ping() error {
	db, err := p.Db()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (p *Postgres) Close() error {
	if p.db != nil {
		sqlDB, err := p.db.DB()
		if err != nil {
			return err
		}
		sqlDB.Close()
	}
	return nil
}

func (p *Postgres) Migrate(models ...interface{}) error {
	db, err := p.Db()
	if err != nil {
		return err
	}
	return db.AutoMigrate(models...)
}
