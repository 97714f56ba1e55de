package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tazhibayda/idea-service/internal/domain"
)

func (s *Store) InsertNotification(ctx context.Context, n *domain.IdeaNotification) error {
	res, err := s.colNotifications.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return nil
}

func (s *Store) FindNotificationByID(ctx context.Context, id primitive.ObjectID) (*domain.IdeaNotification, error) {
	var n domain.IdeaNotification
	err := s.colNotifications.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &n, err
}

func (s *Store) MarkNotificationRead(ctx context.Context, id, receiver primitive.ObjectID) (*domain.IdeaNotification, error) {
	res := s.colNotifications.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "receiver": receiver},
		bson.M{"$set": bson.M{"read": true, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var n domain.IdeaNotification
	if err := res.Decode(&n); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (s *Store) ListNotifications(ctx context.Context, receiver primitive.ObjectID, p domain.ListParams) ([]domain.IdeaNotification, int64, error) {
	filter := bson.M{"receiver": receiver}

	total, err := s.colNotifications.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.colNotifications.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []domain.IdeaNotification
	for cur.Next(ctx) {
		var n domain.IdeaNotification
		if err := cur.Decode(&n); err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	return out, total, cur.Err()
}
