package domain

// Follow is a directed edge: FollowerID receives FollowedID's posts in their feed.
type Follow struct {
	FollowerID string
	FollowedID string
}
