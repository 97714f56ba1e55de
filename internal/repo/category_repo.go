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

func (s *Store) InsertCategory(ctx context.Context, c *domain.Category) error {
	res, err := s.colCategories.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

func (s *Store) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	err := s.colCategories.FindOne(ctx, bson.M{"name": name}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &c, err
}

func (s *Store) FindCategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	var c domain.Category
	err := s.colCategories.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &c, err
}

func (s *Store) SetCategoryStatus(ctx context.Context, id primitive.ObjectID, status domain.EntityStatus, actor primitive.ObjectID) (*domain.Category, error) {
	res := s.colCategories.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
			"updated_by": actor,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var c domain.Category
	if err := res.Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context, p domain.ListParams) ([]domain.Category, int64, error) {
	sort := bson.D{{Key: "created_at", Value: -1}}
	switch p.Sort {
	case domain.SortDateCreatedAsc:
		sort = bson.D{{Key: "created_at", Value: 1}}
	case domain.SortNameAsc:
		sort = bson.D{{Key: "name", Value: 1}}
	case domain.SortNameDesc:
		sort = bson.D{{Key: "name", Value: -1}}
	}

	total, err := s.colCategories.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.colCategories.Find(ctx, bson.M{}, options.Find().
		SetSort(sort).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []domain.Category
	for cur.Next(ctx) {
		var c domain.Category
		if err := cur.Decode(&c); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, cur.Err()
}
