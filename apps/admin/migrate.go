package main

import (
	"context"
	"time"

	"github.com/abovethehill/churchadmin/storage/mongodb"
)

var (
	openDBFunc        = mongodb.Open          // mockable
	ensureIndexesFunc = mongodb.EnsureIndexes // mockable
)

const migrateTimeout = 30 * time.Second

func (cli *commandLine) migrate() error {
	db, err := openDBFunc(cli.conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()
	return ensureIndexesFunc(ctx, db)
}
