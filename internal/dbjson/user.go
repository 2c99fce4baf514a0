package dbjson

import (
	"strconv"
	"time"
)

// UserID is the canonical user identifier. Ids are minted from the
// creation timestamp in milliseconds; string forms exist only at the CLI
// boundary, never compared against the numeric form.
type UserID int64

func ParseUserID(s string) (UserID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	return UserID(n), err
}

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

const (
	DefaultAvatar = "assets/images/avatars/default.jpg"
	DefaultBio    = "This user is lazy and left nothing behind..."
	AdminBio      = "System administrator"
)

type User struct {
	ID        UserID `json:"id"`
	StudentID string `json:"studentId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	// Stored as-is and compared by exact value. There is deliberately no
	// hashing in this system.
	Password string    `json:"password"`
	Avatar   string    `json:"avatar"`
	Bio      string    `json:"bio"`
	JoinedAt time.Time `json:"joinDate"`

	Followers []UserID `json:"followers"`
	Following []UserID `json:"following"`
	// Bookmarks keeps insertion order: appended on bookmark, and the
	// bookmarked feed depends on that order. Not a set.
	Bookmarks []PostID `json:"bookmarks"`

	IsAdmin   bool       `json:"isAdmin"`
	Banned    bool       `json:"banned,omitempty"`
	BanReason string     `json:"banReason,omitempty"`
	BannedAt  *time.Time `json:"banDate,omitempty"`
}

// Snapshot freezes the author fields embedded into a post at publish
// time. The copy is intentional: a post shows who the author was then,
// even after the live User record changes.
func (u *User) Snapshot() Author {
	return Author{ID: u.ID, Name: u.Username, Avatar: u.Avatar}
}

func (u *User) IsFollowing(target UserID) bool {
	for _, id := range u.Following {
		if id == target {
			return true
		}
	}
	return false
}

func (u *User) HasBookmarked(post PostID) bool {
	for _, id := range u.Bookmarks {
		if id == post {
			return true
		}
	}
	return false
}
