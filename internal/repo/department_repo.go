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

func (s *Store) InsertDepartment(ctx context.Context, d *domain.Department) error {
	res, err := s.colDepartments.InsertOne(ctx, d)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

func (s *Store) FindDepartmentByName(ctx context.Context, name string) (*domain.Department, error) {
	var d domain.Department
	err := s.colDepartments.FindOne(ctx, bson.M{"name": name}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &d, err
}

func (s *Store) FindDepartmentByID(ctx context.Context, id primitive.ObjectID) (*domain.Department, error) {
	var d domain.Department
	err := s.colDepartments.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &d, err
}

func (s *Store) SetDepartmentStatus(ctx context.Context, id primitive.ObjectID, status domain.EntityStatus, actor primitive.ObjectID) (*domain.Department, error) {
	res := s.colDepartments.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
			"updated_by": actor,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var d domain.Department
	if err := res.Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *Store) ListDepartments(ctx context.Context, p domain.ListParams) ([]domain.Department, int64, error) {
	sort := bson.D{{Key: "created_at", Value: -1}}
	switch p.Sort {
	case domain.SortDateCreatedAsc:
		sort = bson.D{{Key: "created_at", Value: 1}}
	case domain.SortNameAsc:
		sort = bson.D{{Key: "name", Value: 1}}
	case domain.SortNameDesc:
		sort = bson.D{{Key: "name", Value: -1}}
	}

	total, err := s.colDepartments.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.colDepartments.Find(ctx, bson.M{}, options.Find().
		SetSort(sort).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []domain.Department
	for cur.Next(ctx) {
		var d domain.Department
		if err := cur.Decode(&d); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, cur.Err()
}
