package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/tazhibayda/idea-service/internal/domain"
)

func (s *Store) InsertIdea(ctx context.Context, i *domain.Idea) error {
	res, err := s.colIdeas.InsertOne(ctx, i)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		i.ID = oid
	}
	return nil
}

func (s *Store) FindIdeaByTitle(ctx context.Context, title string) (*domain.Idea, error) {
	var i domain.Idea
	err := s.colIdeas.FindOne(ctx, bson.M{"title": title}).Decode(&i)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &i, err
}

func (s *Store) FindIdeaByID(ctx context.Context, id primitive.ObjectID) (*domain.Idea, error) {
	var i domain.Idea
	err := s.colIdeas.FindOne(ctx, bson.M{"_id": id}).Decode(&i)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &i, err
}

// VoteUpdate is the engagement mutation decided by the service; the whole
// thing maps to one conditional update so concurrent votes on the same
// idea cannot lose each other.
func (s *Store) ApplyVote(ctx context.Context, id primitive.ObjectID, v domain.VoteUpdate) (*domain.Idea, error) {
	update := bson.M{}
	pull := bson.M{}
	push := bson.M{}
	entry := domain.Engagement{User: v.User, CreatedAt: v.At}

	if v.PullLike {
		pull["like"] = bson.M{"user": v.User}
	}
	if v.PullDislike {
		pull["dislike"] = bson.M{"user": v.User}
	}
	if v.PushLike {
		push["like"] = entry
	}
	if v.PushDislike {
		push["dislike"] = entry
	}
	if len(pull) > 0 {
		update["$pull"] = pull
	}
	if len(push) > 0 {
		update["$push"] = push
	}
	update["$set"] = bson.M{"updated_at": v.At}

	return s.findIdeaAndUpdate(ctx, bson.M{"_id": id}, update)
}

func (s *Store) AppendView(ctx context.Context, id primitive.ObjectID, e domain.Engagement) (*domain.Idea, error) {
	return s.findIdeaAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"views": e},
		"$set":  bson.M{"updated_at": e.CreatedAt},
	})
}

// PushComment inserts at the head of the array: the comments list is
// newest-first.
func (s *Store) PushComment(ctx context.Context, id primitive.ObjectID, c domain.Comment) (*domain.Idea, error) {
	return s.findIdeaAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"comments": bson.M{
			"$each":     bson.A{c},
			"$position": 0,
		}},
		"$set": bson.M{"updated_at": c.CreatedAt, "updated_by": c.CreatedBy},
	})
}

// EditComment pushes the pre-edit snapshot onto the comment's edit history
// and overwrites content and createdAt (the "last modified" stamp), all in
// a single document update via an array filter.
func (s *Store) EditComment(ctx context.Context, ideaID, commentID primitive.ObjectID, snap domain.EditSnapshot, content string, now time.Time) (*domain.Idea, error) {
	res := s.colIdeas.FindOneAndUpdate(ctx,
		bson.M{"_id": ideaID, "comments._id": commentID},
		bson.M{
			"$push": bson.M{"comments.$[c].edit_history": snap},
			"$set": bson.M{
				"comments.$[c].content":    content,
				"comments.$[c].created_at": now,
				"updated_at":               now,
			},
		},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetArrayFilters(options.ArrayFilters{Filters: bson.A{bson.M{"c._id": commentID}}}),
	)
	var i domain.Idea
	if err := res.Decode(&i); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

// RemoveComment drops the comment entirely; its edit history goes with it.
func (s *Store) RemoveComment(ctx context.Context, ideaID, commentID primitive.ObjectID) (*domain.Idea, error) {
	return s.findIdeaAndUpdate(ctx, bson.M{"_id": ideaID}, bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (s *Store) findIdeaAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Idea, error) {
	res := s.colIdeas.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var i domain.Idea
	if err := res.Decode(&i); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

// ListIdeas runs the read-model pipeline: filter, derive the per-idea
// counts, sort, paginate. Counts have to be computed in the pipeline
// because they are sort keys.
func (s *Store) ListIdeas(ctx context.Context, p domain.ListParams, f domain.IdeaFilter) ([]domain.IdeaRow, int64, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.idea.list")
	defer sp.Finish()

	match := bson.M{}
	if len(f.Categories) > 0 {
		match["category"] = bson.M{"$in": f.Categories}
	}
	if len(f.Threads) > 0 {
		match["thread"] = bson.M{"$in": f.Threads}
	}
	if len(f.Departments) > 0 {
		match["department"] = bson.M{"$in": f.Departments}
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	switch p.Sort {
	case domain.SortDateCreatedAsc:
		sort = bson.D{{Key: "created_at", Value: 1}}
	case domain.SortLikeAsc:
		sort = bson.D{{Key: "like_count", Value: 1}}
	case domain.SortLikeDesc:
		sort = bson.D{{Key: "like_count", Value: -1}}
	case domain.SortDislikeAsc:
		sort = bson.D{{Key: "dislike_count", Value: 1}}
	case domain.SortDislikeDesc:
		sort = bson.D{{Key: "dislike_count", Value: -1}}
	case domain.SortPopularityAsc:
		sort = bson.D{{Key: "view_count", Value: 1}}
	case domain.SortPopularityDesc:
		sort = bson.D{{Key: "view_count", Value: -1}}
	case domain.SortLatestComment:
		sort = bson.D{{Key: "comment_last_created", Value: -1}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$project", Value: bson.M{
			"title":                1,
			"description":          1,
			"documents":            1,
			"category":             1,
			"thread":               1,
			"department":           1,
			"is_anonymous":         1,
			"created_at":           1,
			"updated_at":           1,
			"updated_by":           1,
			"like_count":           bson.M{"$size": bson.M{"$ifNull": bson.A{"$like", bson.A{}}}},
			"dislike_count":        bson.M{"$size": bson.M{"$ifNull": bson.A{"$dislike", bson.A{}}}},
			"view_count":           bson.M{"$size": bson.M{"$ifNull": bson.A{"$views", bson.A{}}}},
			"comments_count":       bson.M{"$size": bson.M{"$ifNull": bson.A{"$comments", bson.A{}}}},
			"comment_last_created": bson.M{"$max": "$comments.created_at"},
		}}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$skip", Value: p.Skip()}},
		{{Key: "$limit", Value: int64(p.Limit)}},
	}

	total, err := s.colIdeas.CountDocuments(ctx, match)
	if err != nil {
		sp.SetTag("error", err)
		return nil, 0, err
	}

	cur, err := s.colIdeas.Aggregate(ctx, pipeline)
	if err != nil {
		sp.SetTag("error", err)
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var rows []domain.IdeaRow
	for cur.Next(ctx) {
		var r domain.IdeaRow
		if err := cur.Decode(&r); err != nil {
			return nil, 0, err
		}
		rows = append(rows, r)
	}
	return rows, total, cur.Err()
}

// IdeasBetween is half-open: [from, to). Keeps a midnight-boundary idea
// out of two adjacent windows.
func (s *Store) IdeasBetween(ctx context.Context, from, to time.Time) ([]domain.Idea, error) {
	cur, err := s.colIdeas.Find(ctx, bson.M{
		"created_at": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Idea
	for cur.Next(ctx) {
		var i domain.Idea
		if err := cur.Decode(&i); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, cur.Err()
}
