package dbjson

import (
	"strconv"
	"time"
)

// PostID is the canonical post identifier, minted from the creation
// timestamp in milliseconds and assumed unique by recency.
type PostID int64

func ParsePostID(s string) (PostID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	return PostID(n), err
}

func (id PostID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyFriends Privacy = "friends"
	PrivacyPrivate Privacy = "private"
)

func (p Privacy) Valid() bool {
	switch p {
	case PrivacyPublic, PrivacyFriends, PrivacyPrivate:
		return true
	}
	return false
}

// Author is the immutable value snapshot of a user as they appeared when
// the post was published. It is not a live reference and can go stale
// relative to the User record; that staleness is the contract.
type Author struct {
	ID     UserID `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Post struct {
	ID      PostID   `json:"id"`
	Author  Author   `json:"author"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
	// Tags are deduplicated, first-occurrence order preserved.
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"timestamp"`

	// Likes mirrors len(LikedBy) at all times.
	Likes    int      `json:"likes"`
	LikedBy  []UserID `json:"likedBy"`
	Comments int      `json:"comments"`
	Shares   int      `json:"shares"`

	Privacy Privacy `json:"privacy"`

	IsRepost bool `json:"isRepost,omitempty"`
	// Original is a value snapshot of the reposted post, frozen like the
	// author snapshot.
	Original *Post `json:"originalPost,omitempty"`
}

func (p *Post) LikedByUser(id UserID) bool {
	for _, u := range p.LikedBy {
		if u == id {
			return true
		}
	}
	return false
}

func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HotScore is the engagement sum the hot feed sorts by.
func (p *Post) HotScore() int {
	return p.Likes + p.Comments + p.Shares
}
