package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tazhibayda/idea-service/internal/domain"
)

func (s *Store) InsertThread(ctx context.Context, t *domain.Thread) error {
	res, err := s.colThreads.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

func (s *Store) FindThreadByName(ctx context.Context, name string) (*domain.Thread, error) {
	var t domain.Thread
	err := s.colThreads.FindOne(ctx, bson.M{"name": name}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &t, err
}

func (s *Store) FindThreadByID(ctx context.Context, id primitive.ObjectID) (*domain.Thread, error) {
	var t domain.Thread
	err := s.colThreads.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &t, err
}

func (s *Store) ListThreads(ctx context.Context, p domain.ListParams) ([]domain.Thread, int64, error) {
	sort := bson.D{{Key: "created_at", Value: -1}}
	switch p.Sort {
	case domain.SortDateCreatedAsc:
		sort = bson.D{{Key: "created_at", Value: 1}}
	case domain.SortNameAsc:
		sort = bson.D{{Key: "name", Value: 1}}
	case domain.SortNameDesc:
		sort = bson.D{{Key: "name", Value: -1}}
	case domain.SortClosureAsc:
		sort = bson.D{{Key: "closure_date", Value: 1}}
	case domain.SortClosureDesc:
		sort = bson.D{{Key: "closure_date", Value: -1}}
	case domain.SortFinalClosureAsc:
		sort = bson.D{{Key: "final_closure_date", Value: 1}}
	case domain.SortFinalClosureDsc:
		sort = bson.D{{Key: "final_closure_date", Value: -1}}
	}

	total, err := s.colThreads.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.colThreads.Find(ctx, bson.M{}, options.Find().
		SetSort(sort).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []domain.Thread
	for cur.Next(ctx) {
		var t domain.Thread
		if err := cur.Decode(&t); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, cur.Err()
}
