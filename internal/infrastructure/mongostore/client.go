// Package mongostore implementa los puertos de persistencia sobre MongoDB.
// La unicidad de username y sku la garantizan índices únicos; el orden de
// inserción se reconstruye con (created_at, seq), donde seq es un ObjectID.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/stockroom-api/pkg/config"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
)

// Connect abre el cliente, verifica la conexión y crea los índices.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	db := client.Database(cfg.Database)
	if err := EnsureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

// EnsureIndexes crea (idempotente) los índices únicos y de ordenación.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("username_unique")},
		{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "seq", Value: 1}}, Options: options.Index().SetName("insertion_order")},
	})
	if err != nil {
		return fmt.Errorf("mongo índices users: %w", err)
	}
	_, err = db.Collection(productsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true).SetName("sku_unique")},
		{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "seq", Value: 1}}, Options: options.Index().SetName("insertion_order")},
		{Keys: bson.D{{Key: "quantity", Value: -1}, {Key: "created_at", Value: 1}, {Key: "seq", Value: 1}}, Options: options.Index().SetName("quantity_rank")},
	})
	if err != nil {
		return fmt.Errorf("mongo índices products: %w", err)
	}
	return nil
}

// insertionOrder ordena por fecha de alta y desempata con el ObjectID.
func insertionOrder() bson.D {
	return bson.D{{Key: "created_at", Value: 1}, {Key: "seq", Value: 1}}
}
