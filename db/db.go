package db

import "context"

type StoreType string

const (
	Memory   StoreType = "memory"
	Postgres StoreType = "postgres"
	Mongo    StoreType = "mongo"
	Redis    StoreType = "redis"
)

// DB is a session store backend connection.
type DB interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}
