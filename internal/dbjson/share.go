package dbjson

import "fmt"

// ShareKey builds the share-counter key for a post and platform, matching
// the persisted "<postId>_<platform>" form.
func ShareKey(post PostID, platform string) string {
	return fmt.Sprintf("%d_%s", post, platform)
}
