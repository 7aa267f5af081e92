package domain

import "encoding/json"

// ProfileCounts holds the three independently fetched totals of a profile.
type ProfileCounts struct {
	PostCount      int64 `json:"postCount"`
	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
}

// ProfileContext is the data shared by every profile screen.
type ProfileContext struct {
	Profile           PublicUser
	IsVisitorsProfile bool
	IsFollowing       bool
	Counts            ProfileCounts
}

// ProfileView is the flat data object handed to the renderer for a profile screen.
// Only the list named by CurrentPage is rendered, as an array even when empty.
type ProfileView struct {
	Title             string        `json:"title,omitempty"`
	CurrentPage       string        `json:"currentPage"`
	Posts             []Post        `json:"posts"`
	Followers         []PublicUser  `json:"followers"`
	Following         []PublicUser  `json:"following"`
	ProfileUsername   string        `json:"profileUsername"`
	ProfileGravatar   string        `json:"profileGravatar"`
	IsFollowing       bool          `json:"isFollowing"`
	IsVisitorsProfile bool          `json:"isVisitorsProfile"`
	Counts            ProfileCounts `json:"counts"`
}

func (v ProfileView) MarshalJSON() ([]byte, error) {
	// The outer list fields shadow the embedded ones.
	type fields ProfileView
	out := struct {
		fields
		Posts     *[]Post       `json:"posts,omitempty"`
		Followers *[]PublicUser `json:"followers,omitempty"`
		Following *[]PublicUser `json:"following,omitempty"`
	}{fields: fields(v)}

	switch v.CurrentPage {
	case PagePosts:
		posts := nonNil(v.Posts)
		out.Posts = &posts
	case PageFollowers:
		followers := nonNil(v.Followers)
		out.Followers = &followers
	case PageFollowing:
		following := nonNil(v.Following)
		out.Following = &following
	}
	return json.Marshal(out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

const (
	PagePosts     = "posts"
	PageFollowers = "followers"
	PageFollowing = "following"
)
