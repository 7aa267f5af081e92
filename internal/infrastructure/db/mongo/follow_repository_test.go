package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/devfollow/social-network/internal/core/domain"
)

func TestFollowRepository_IsFollowing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	followed, follower := primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()

	mt.Run("edge present", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.follows", mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(1)}},
		))

		ok, err := NewFollowRepository(mt.DB).IsFollowing(context.Background(), followed, follower)
		require.NoError(mt, err)
		assert.True(mt, ok)
	})

	mt.Run("edge absent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.follows", mtest.FirstBatch))

		ok, err := NewFollowRepository(mt.DB).IsFollowing(context.Background(), followed, follower)
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		ok, err := NewFollowRepository(mt.DB).IsFollowing(context.Background(), "x", follower)
		require.NoError(mt, err)
		assert.False(mt, ok)
	})
}

func TestFollowRepository_Followers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("joined users", func(mt *mtest.T) {
		bob := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.follows", mtest.FirstBatch,
			bson.D{{Key: "user", Value: bson.D{
				{Key: "_id", Value: bob},
				{Key: "username", Value: "bob"},
				{Key: "email", Value: "bob@example.com"},
			}}},
		))

		users, err := NewFollowRepository(mt.DB).Followers(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		require.Len(mt, users, 1)
		assert.Equal(mt, domain.PublicUser{
			ID:       bob.Hex(),
			Username: "bob",
			Gravatar: domain.Gravatar("bob@example.com"),
		}, users[0])
	})

	mt.Run("none", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.follows", mtest.FirstBatch))

		users, err := NewFollowRepository(mt.DB).Following(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.NotNil(mt, users)
		assert.Empty(mt, users)
	})
}

func TestFollowRepository_AddRemove(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	edge := domain.Follow{
		FollowerID: primitive.NewObjectID().Hex(),
		FollowedID: primitive.NewObjectID().Hex(),
	}

	mt.Run("add", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, NewFollowRepository(mt.DB).Add(context.Background(), edge))
	})

	mt.Run("add existing edge", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))
		assert.NoError(mt, NewFollowRepository(mt.DB).Add(context.Background(), edge))
	})

	mt.Run("remove", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))
		assert.NoError(mt, NewFollowRepository(mt.DB).Remove(context.Background(), edge))
	})

	mt.Run("add malformed", func(mt *mtest.T) {
		err := NewFollowRepository(mt.DB).Add(context.Background(), domain.Follow{FollowerID: "x", FollowedID: edge.FollowedID})
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}
