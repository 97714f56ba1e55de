package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	Client *mongo.Client
	DB     *mongo.Database

	colUsers         *mongo.Collection
	colDepartments   *mongo.Collection
	colThreads       *mongo.Collection
	colCategories    *mongo.Collection
	colIdeas         *mongo.Collection
	colNotifications *mongo.Collection
	colEvents        *mongo.Collection
}

func NewStore(ctx context.Context, uri, dbname string) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetRetryWrites(true).
		SetMaxPoolSize(50),
	)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		return nil, err
	}
	db := cli.Database(dbname)
	return &Store{
		Client:           cli,
		DB:               db,
		colUsers:         db.Collection("users"),
		colDepartments:   db.Collection("departments"),
		colThreads:       db.Collection("threads"),
		colCategories:    db.Collection("categories"),
		colIdeas:         db.Collection("ideas"),
		colNotifications: db.Collection("idea_notifications"),
		colEvents:        db.Collection("events"),
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error { return s.Client.Disconnect(ctx) }

// EnsureIndexes keeps uniqueness of the natural keys at the storage level;
// the duplicate-name checks in the services are a fast path, the index is
// the guarantee under concurrent creates.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	uniq := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_" + field),
		}
	}

	if _, err := s.colUsers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniq("email"),
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("role_status")},
	}); err != nil {
		return err
	}
	if _, err := s.colDepartments.Indexes().CreateOne(ctx, uniq("name")); err != nil {
		return err
	}
	if _, err := s.colThreads.Indexes().CreateOne(ctx, uniq("name")); err != nil {
		return err
	}
	if _, err := s.colCategories.Indexes().CreateOne(ctx, uniq("name")); err != nil {
		return err
	}
	if _, err := s.colIdeas.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniq("title"),
		{Keys: bson.D{{Key: "thread", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("thread_created_desc")},
		{Keys: bson.D{{Key: "created_at", Value: -1}}, Options: options.Index().SetName("created_desc")},
	}); err != nil {
		return err
	}
	if _, err := s.colNotifications.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "receiver", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("receiver_created_desc"),
	}); err != nil {
		return err
	}
	_, err := s.colEvents.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("created_desc"),
	})
	return err
}

func IsDup(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce *mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}
