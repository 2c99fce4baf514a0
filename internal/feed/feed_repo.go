package feed

import (
	"context"
	"fmt"

	"campuslife/internal/common"
	"campuslife/internal/dbjson"
)

const (
	postsDoc  = "posts"
	sharesDoc = "shares"
)

// Posts is the persistence surface for the post list. The list is stored
// newest-first; InsertPost prepends.
type Posts interface {
	ListPosts(ctx context.Context) ([]dbjson.Post, error)
	GetPostByID(ctx context.Context, id dbjson.PostID) (*dbjson.Post, error)
	ListPostsByAuthor(ctx context.Context, author dbjson.UserID) ([]dbjson.Post, error)
	InsertPost(ctx context.Context, p *dbjson.Post) error
	UpdatePost(ctx context.Context, p *dbjson.Post) error
	DeletePost(ctx context.Context, id dbjson.PostID) error
}

// Shares is the persistence surface for the per-platform share counters.
type Shares interface {
	IncrementShare(ctx context.Context, post dbjson.PostID, platform string) (int, error)
	ShareCount(ctx context.Context, post dbjson.PostID, platform string) (int, error)
}

type FeedRepository struct {
	store *dbjson.Store
}

func NewFeedRepository(store *dbjson.Store) *FeedRepository {
	return &FeedRepository{store: store}
}

// --------- POSTS ---------

func (r *FeedRepository) loadPosts() ([]dbjson.Post, error) {
	var posts []dbjson.Post
	if err := r.store.Read(postsDoc, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *FeedRepository) savePosts(posts []dbjson.Post) error {
	return r.store.Write(postsDoc, posts)
}

func (r *FeedRepository) ListPosts(ctx context.Context) ([]dbjson.Post, error) {
	return r.loadPosts()
}

func (r *FeedRepository) GetPostByID(ctx context.Context, id dbjson.PostID) (*dbjson.Post, error) {
	posts, err := r.loadPosts()
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			p := posts[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("post %s: %w", id, common.ErrNotFound)
}

func (r *FeedRepository) ListPostsByAuthor(ctx context.Context, author dbjson.UserID) ([]dbjson.Post, error) {
	posts, err := r.loadPosts()
	if err != nil {
		return nil, err
	}
	var out []dbjson.Post
	for i := range posts {
		if posts[i].Author.ID == author {
			out = append(out, posts[i])
		}
	}
	return out, nil
}

func (r *FeedRepository) InsertPost(ctx context.Context, p *dbjson.Post) error {
	posts, err := r.loadPosts()
	if err != nil {
		return err
	}
	posts = append([]dbjson.Post{*p}, posts...)
	return r.savePosts(posts)
}

func (r *FeedRepository) UpdatePost(ctx context.Context, p *dbjson.Post) error {
	posts, err := r.loadPosts()
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].ID == p.ID {
			posts[i] = *p
			return r.savePosts(posts)
		}
	}
	return fmt.Errorf("post %s: %w", p.ID, common.ErrNotFound)
}

func (r *FeedRepository) DeletePost(ctx context.Context, id dbjson.PostID) error {
	posts, err := r.loadPosts()
	if err != nil {
		return err
	}
	out := posts[:0]
	found := false
	for _, p := range posts {
		if p.ID == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		return fmt.Errorf("post %s: %w", id, common.ErrNotFound)
	}
	return r.savePosts(out)
}

// --------- SHARES ---------

func (r *FeedRepository) loadShares() (map[string]int, error) {
	var shares map[string]int
	if err := r.store.Read(sharesDoc, &shares); err != nil {
		return nil, err
	}
	if shares == nil {
		shares = map[string]int{}
	}
	return shares, nil
}

func (r *FeedRepository) IncrementShare(ctx context.Context, post dbjson.PostID, platform string) (int, error) {
	shares, err := r.loadShares()
	if err != nil {
		return 0, err
	}
	key := dbjson.ShareKey(post, platform)
	shares[key]++
	if err := r.store.Write(sharesDoc, shares); err != nil {
		return 0, err
	}
	return shares[key], nil
}

func (r *FeedRepository) ShareCount(ctx context.Context, post dbjson.PostID, platform string) (int, error) {
	shares, err := r.loadShares()
	if err != nil {
		return 0, err
	}
	return shares[dbjson.ShareKey(post, platform)], nil
}
