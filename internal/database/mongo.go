package database

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"home-horizon/internal/config"
)

// Store wraps the Mongo client and exposes one store per collection.
type Store struct {
	client          *mongo.Client
	db              *mongo.Database
	useTransactions bool

	Users      *UserStore
	Properties *PropertyStore
	Reviews    *ReviewStore
	Wishlist   *WishlistStore
	Offers     *OfferStore
}

// Connect establishes the Mongo connection and wires the collection stores
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &Store{
		client:          client,
		db:              db,
		useTransactions: cfg.UseTransactions,
	}
	s.Users = &UserStore{c: db.Collection("users")}
	s.Properties = &PropertyStore{c: db.Collection("properties")}
	s.Reviews = &ReviewStore{c: db.Collection("reviews")}
	s.Wishlist = &WishlistStore{c: db.Collection("wishlist")}
	s.Offers = &OfferStore{c: db.Collection("offers")}

	log.Printf("[store] connected to database %s (transactions: %v)", cfg.Database, cfg.UseTransactions)
	return s, nil
}

// Close disconnects from Mongo
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// WithTransaction runs fn inside a Mongo session transaction. When
// transactions are disabled (standalone server), fn runs unwrapped and a
// failure between its writes leaves an intermediate state that the caller
// must retry; callers of multi-document commits are written to be
// idempotent for that reason.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.useTransactions {
		return fn(ctx)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
