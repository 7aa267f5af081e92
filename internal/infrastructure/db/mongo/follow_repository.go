package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devfollow/social-network/internal/core/domain"
)

const collectionFollows = "follows"

type FollowRepository struct {
	col *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{col: db.Collection(collectionFollows)}
}

type followDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FollowerID primitive.ObjectID `bson:"followerId"`
	FollowedID primitive.ObjectID `bson:"followedId"`
}

func edgeFilter(edge domain.Follow) (bson.M, error) {
	follower, err := userObjectID(edge.FollowerID)
	if err != nil {
		return nil, err
	}
	followed, err := userObjectID(edge.FollowedID)
	if err != nil {
		return nil, err
	}
	return bson.M{"followerId": follower, "followedId": followed}, nil
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followedID, followerID string) (bool, error) {
	filter, err := edgeFilter(domain.Follow{FollowerID: followerID, FollowedID: followedID})
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("is following: %w", err)
	}
	return n > 0, nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "followedId", userID)
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "followerId", userID)
}

func (r *FollowRepository) count(ctx context.Context, field, userID string) (int64, error) {
	oid, err := userObjectID(userID)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{field: oid})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", field, err)
	}
	return n, nil
}

func (r *FollowRepository) Followers(ctx context.Context, userID string) ([]domain.PublicUser, error) {
	return r.users(ctx, "followedId", "followerId", userID)
}

func (r *FollowRepository) Following(ctx context.Context, userID string) ([]domain.PublicUser, error) {
	return r.users(ctx, "followerId", "followedId", userID)
}

// users matches edges on matchField and joins the user referenced by joinField.
func (r *FollowRepository) users(ctx context.Context, matchField, joinField, userID string) ([]domain.PublicUser, error) {
	oid, err := userObjectID(userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{matchField: oid}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: joinField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "userDoc"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "user", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$userDoc", 0}}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate follows: %w", err)
	}

	var rows []struct {
		User userDoc `bson:"user"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode follows: %w", err)
	}

	out := make([]domain.PublicUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.PublicUser{
			ID:       row.User.ID.Hex(),
			Username: row.User.Username,
			Gravatar: domain.Gravatar(row.User.Email),
		})
	}
	return out, nil
}

func (r *FollowRepository) Add(ctx context.Context, edge domain.Follow) error {
	filter, err := edgeFilter(edge)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := followDoc{
		ID:         primitive.NewObjectID(),
		FollowerID: filter["followerId"].(primitive.ObjectID),
		FollowedID: filter["followedId"].(primitive.ObjectID),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) Remove(ctx context.Context, edge domain.Follow) error {
	filter, err := edgeFilter(edge)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

// EnsureIndexes keeps one edge per (follower, followed) pair and supports both count directions.
func (r *FollowRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "followerId", Value: 1}, {Key: "followedId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "followedId", Value: 1}}},
	})
	return err
}
