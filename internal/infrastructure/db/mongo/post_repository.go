package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devfollow/social-network/internal/core/domain"
)

const collectionPosts = "posts"

type PostRepository struct {
	col     *mongo.Collection
	follows *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		col:     db.Collection(collectionPosts),
		follows: db.Collection(collectionFollows),
	}
}

type postDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Body        string             `bson:"body"`
	CreatedDate time.Time          `bson:"createdDate"`
	Author      primitive.ObjectID `bson:"author"`
}

// postView is a post joined with its author document.
type postView struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Body        string             `bson:"body"`
	CreatedDate time.Time          `bson:"createdDate"`
	AuthorID    primitive.ObjectID `bson:"authorId"`
	Author      userDoc            `bson:"author"`
}

func (v postView) toDomain() domain.Post {
	return domain.Post{
		ID:          v.ID.Hex(),
		Title:       v.Title,
		Body:        v.Body,
		CreatedDate: v.CreatedDate,
		AuthorID:    v.AuthorID.Hex(),
		Author: domain.PublicUser{
			ID:       v.Author.ID.Hex(),
			Username: v.Author.Username,
			Gravatar: domain.Gravatar(v.Author.Email),
		},
	}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	author, err := userObjectID(p.AuthorID)
	if err != nil {
		return "", err
	}

	doc := postDoc{
		ID:          primitive.NewObjectID(),
		Title:       p.Title,
		Body:        p.Body,
		CreatedDate: p.CreatedDate,
		Author:      author,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}
	return doc.ID.Hex(), nil
}

func (r *PostRepository) FindByAuthorID(ctx context.Context, authorID string) ([]domain.Post, error) {
	author, err := userObjectID(authorID)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, bson.M{"author": author})
}

func (r *PostRepository) Feed(ctx context.Context, userID string) ([]domain.Post, error) {
	follower, err := userObjectID(userID)
	if err != nil {
		return nil, err
	}

	qctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.follows.Find(qctx, bson.M{"followerId": follower})
	if err != nil {
		return nil, fmt.Errorf("feed: find follows: %w", err)
	}
	var edges []followDoc
	if err := cur.All(qctx, &edges); err != nil {
		return nil, fmt.Errorf("feed: decode follows: %w", err)
	}
	if len(edges) == 0 {
		return []domain.Post{}, nil
	}

	authors := make([]primitive.ObjectID, len(edges))
	for i, e := range edges {
		authors[i] = e.FollowedID
	}
	return r.query(ctx, bson.M{"author": bson.M{"$in": authors}})
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	author, err := userObjectID(authorID)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"author": author})
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// query returns matching posts newest first, each joined with its author.
func (r *PostRepository) query(ctx context.Context, match bson.M) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdDate", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authorDocument"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "body", Value: 1},
			{Key: "createdDate", Value: 1},
			{Key: "authorId", Value: "$author"},
			{Key: "author", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$authorDocument", 0}}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate posts: %w", err)
	}

	var views []postView
	if err := cur.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]domain.Post, len(views))
	for i, v := range views {
		posts[i] = v.toDomain()
	}
	return posts, nil
}

func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdDate", Value: -1}}},
	})
	return err
}
