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

func (s *Store) InsertUser(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := s.colUsers.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &u, err
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &u, err
}

func (s *Store) FindUsersByRole(ctx context.Context, roles ...domain.UserRole) ([]domain.User, error) {
	cur, err := s.colUsers.Find(ctx, bson.M{"role": bson.M{"$in": roles}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.User
	for cur.Next(ctx) {
		var u domain.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, cur.Err()
}

// FindUserRefs batch-loads the embedded user projections for read-model
// expansion (the service joins references, not the storage engine).
func (s *Store) FindUserRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.UserRef, error) {
	out := make(map[primitive.ObjectID]domain.UserRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.colUsers.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var u domain.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u.Ref()
	}
	return out, cur.Err()
}

func (s *Store) setUser(ctx context.Context, id primitive.ObjectID, set bson.M, actor primitive.ObjectID) (*domain.User, error) {
	set["updated_at"] = time.Now().UTC()
	set["updated_by"] = actor
	res := s.colUsers.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var u domain.User
	if err := res.Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) SetUserStatus(ctx context.Context, id primitive.ObjectID, status domain.UserStatus, actor primitive.ObjectID) (*domain.User, error) {
	return s.setUser(ctx, id, bson.M{"status": status}, actor)
}

func (s *Store) SetUserPassword(ctx context.Context, id primitive.ObjectID, hash string, consumeCode bool, actor primitive.ObjectID) (*domain.User, error) {
	set := bson.M{"password_hash": hash}
	if consumeCode {
		set["code_expires"] = time.Now().UTC()
	}
	return s.setUser(ctx, id, set, actor)
}

func (s *Store) SetUserCode(ctx context.Context, id primitive.ObjectID, code string, expires time.Time, actor primitive.ObjectID) (*domain.User, error) {
	return s.setUser(ctx, id, bson.M{"code": code, "code_expires": expires}, actor)
}

func (s *Store) SetUserAvatar(ctx context.Context, id primitive.ObjectID, avatar string, actor primitive.ObjectID) (*domain.User, error) {
	return s.setUser(ctx, id, bson.M{"avatar": avatar}, actor)
}

func (s *Store) SetUserDepartment(ctx context.Context, id, department, actor primitive.ObjectID) (*domain.User, error) {
	return s.setUser(ctx, id, bson.M{"department": department}, actor)
}

func (s *Store) UpdateUserProfile(ctx context.Context, id primitive.ObjectID, p domain.ProfileUpdate) (*domain.User, error) {
	return s.setUser(ctx, id, bson.M{
		"first_name":   p.FirstName,
		"last_name":    p.LastName,
		"address":      p.Address,
		"dob":          p.DOB,
		"phone_number": p.PhoneNumber,
		"gender":       p.Gender,
	}, id)
}

// ConsumeActivationCode redeems a one-time code exactly once: the match on
// the non-expired code and the expiry reset happen in a single
// FindOneAndUpdate, so two concurrent redemptions cannot both succeed.
func (s *Store) ConsumeActivationCode(ctx context.Context, id primitive.ObjectID, code string, newStatus domain.UserStatus) (*domain.User, error) {
	now := time.Now().UTC()
	set := bson.M{"code_expires": now, "updated_at": now, "updated_by": id}
	if newStatus != "" {
		set["status"] = newStatus
	}
	res := s.colUsers.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "code": code, "code_expires": bson.M{"$gt": now}},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var u domain.User
	if err := res.Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, p domain.ListParams) ([]domain.User, int64, error) {
	sort := bson.D{{Key: "created_at", Value: -1}}
	switch p.Sort {
	case domain.SortDateCreatedAsc:
		sort = bson.D{{Key: "created_at", Value: 1}}
	case domain.SortEmailAsc:
		sort = bson.D{{Key: "email", Value: 1}}
	case domain.SortEmailDesc:
		sort = bson.D{{Key: "email", Value: -1}}
	case domain.SortNameAsc:
		sort = bson.D{{Key: "first_name", Value: 1}}
	case domain.SortNameDesc:
		sort = bson.D{{Key: "first_name", Value: -1}}
	}

	total, err := s.colUsers.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.colUsers.Find(ctx, bson.M{}, options.Find().
		SetSort(sort).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []domain.User
	for cur.Next(ctx) {
		var u domain.User
		if err := cur.Decode(&u); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, cur.Err()
}
