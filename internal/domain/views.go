package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sort keys accepted by the list endpoints. Values are part of the API.
const (
	SortDateCreatedAsc  = "DATE_CREATED_ASC"
	SortDateCreatedDesc = "DATE_CREATED_DESC"
	SortLikeAsc         = "LIKE_ASC"
	SortLikeDesc        = "LIKE_DESC"
	SortDislikeAsc      = "DISLIKE_ASC"
	SortDislikeDesc     = "DISLIKE_DESC"
	SortPopularityAsc   = "POPULARITY_ASC"
	SortPopularityDesc  = "POPULARITY_DESC"
	SortLatestComment   = "LATEST_COMMENT"
	SortNameAsc         = "NAME_ASC"
	SortNameDesc        = "NAME_DESC"
	SortEmailAsc        = "EMAIL_ASC"
	SortEmailDesc       = "EMAIL_DESC"
	SortClosureAsc      = "CLOSURE_DATE_ASC"
	SortClosureDesc     = "CLOSURE_DATE_DESC"
	SortFinalClosureAsc = "FINAL_CLOSURE_DATE_ASC"
	SortFinalClosureDsc = "FINAL_CLOSURE_DATE_DESC"
)

// ListParams: Page is 0-based here; the HTTP boundary converts from the
// 1-based query parameter before calling the services.
type ListParams struct {
	Page  int
	Limit int
	Sort  string
}

func (p ListParams) Skip() int64 { return int64(p.Page) * int64(p.Limit) }

// TotalPages = ceil(total/limit), with an exact division producing exactly
// total/limit pages rather than one extra empty page.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	l := int64(limit)
	if total%l == 0 {
		return int(total / l)
	}
	return int(total/l) + 1
}

type IdeaFilter struct {
	Categories  []primitive.ObjectID
	Threads     []primitive.ObjectID
	Departments []primitive.ObjectID
}

// IdeaRow is one row of the list read model: raw references plus counts
// derived at read time. Reference expansion happens in the service layer.
type IdeaRow struct {
	ID                 primitive.ObjectID `bson:"_id"          json:"id"`
	Title              string             `bson:"title"        json:"title"`
	Description        string             `bson:"description"  json:"description"`
	Documents          []Document         `bson:"documents"    json:"documents"`
	Category           primitive.ObjectID `bson:"category"     json:"-"`
	Thread             primitive.ObjectID `bson:"thread"       json:"-"`
	Department         primitive.ObjectID `bson:"department"   json:"department"`
	IsAnonymous        bool               `bson:"is_anonymous" json:"isAnonymous"`
	CreatedAt          time.Time          `bson:"created_at"   json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updated_at"   json:"updatedAt"`
	UpdatedBy          primitive.ObjectID `bson:"updated_by"   json:"-"`
	LikeCount          int                `bson:"like_count"     json:"likeCount"`
	DislikeCount       int                `bson:"dislike_count"  json:"dislikeCount"`
	ViewCount          int                `bson:"view_count"     json:"viewCount"`
	CommentsCount      int                `bson:"comments_count" json:"commentsCount"`
	CommentLastCreated *time.Time         `bson:"comment_last_created" json:"commentLastCreated"`
}
