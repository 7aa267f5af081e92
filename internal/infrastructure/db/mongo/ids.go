package mongo

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devfollow/social-network/internal/core/domain"
)

// userObjectID parses a user id. Malformed ids cannot match any document.
func userObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrUserNotFound
	}
	return oid, nil
}
