package feed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"campuslife/internal/common"
	"campuslife/internal/config"
	"campuslife/internal/dbjson"
	"campuslife/internal/social"
	"campuslife/internal/user"
)

type FilterMode string

const (
	FilterAll        FilterMode = "all"
	FilterLatest     FilterMode = "latest"
	FilterHot        FilterMode = "hot"
	FilterFollowing  FilterMode = "following"
	FilterBookmarked FilterMode = "bookmarked"
	FilterTag        FilterMode = "tag"
)

// Filter selects and orders the visible feed. Tag is only read in
// FilterTag mode.
type Filter struct {
	Mode FilterMode
	Tag  string
}

type PublishInput struct {
	Content string
	Images  []string
	Tags    []string
	Privacy dbjson.Privacy
}

type TagCount struct {
	Tag   string
	Count int
}

type FeedUsecase interface {
	Publish(ctx context.Context, author dbjson.UserID, in PublishInput) (*dbjson.Post, error)
	// ListVisible applies the privacy filter for the viewer (nil means
	// unauthenticated), then the filter mode. The following and
	// bookmarked modes require a viewer.
	ListVisible(ctx context.Context, viewer *dbjson.UserID, f Filter) ([]dbjson.Post, error)
	GetPost(ctx context.Context, id dbjson.PostID) (*dbjson.Post, error)
	Like(ctx context.Context, post dbjson.PostID, by dbjson.UserID) (liked bool, err error)
	Bookmark(ctx context.Context, post dbjson.PostID, by dbjson.UserID) (bookmarked bool, err error)
	Repost(ctx context.Context, post dbjson.PostID, by dbjson.UserID) (*dbjson.Post, error)
	RecordShare(ctx context.Context, post dbjson.PostID, platform string) error
	ShareCount(ctx context.Context, post dbjson.PostID, platform string) (int, error)
	SetPrivacy(ctx context.Context, post dbjson.PostID, actor dbjson.UserID, privacy dbjson.Privacy) error
	Delete(ctx context.Context, post dbjson.PostID, actor dbjson.UserID) error
	Search(ctx context.Context, viewer *dbjson.UserID, query string) ([]dbjson.Post, error)
	TrendingTags(ctx context.Context) ([]TagCount, error)
	UploadImages(ctx context.Context, uploads []ImageUpload) ([]string, error)
}

type feedService struct {
	posts    Posts
	shares   Shares
	userRepo user.UserRepository
	graph    social.GraphService
	cfg      config.FeedConfig
}

func NewFeedService(posts Posts, shares Shares, userRepo user.UserRepository, graph social.GraphService, cfg config.FeedConfig) FeedUsecase {
	return &feedService{
		posts:    posts,
		shares:   shares,
		userRepo: userRepo,
		graph:    graph,
		cfg:      cfg,
	}
}

func (s *feedService) Publish(ctx context.Context, author dbjson.UserID, in PublishInput) (*dbjson.Post, error) {
	u, err := s.userRepo.GetUserByID(ctx, author)
	if err != nil {
		return nil, err
	}
	if u.Banned {
		return nil, common.ErrBanned
	}

	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" && len(in.Images) == 0 {
		return nil, common.Invalid("post", "content or an image is required")
	}
	if len([]rune(in.Content)) > s.cfg.MaxContentLen {
		return nil, common.Invalid("content", fmt.Sprintf("at most %d characters", s.cfg.MaxContentLen))
	}
	if len(in.Images) > s.cfg.MaxImages {
		return nil, common.Invalid("images", fmt.Sprintf("at most %d images", s.cfg.MaxImages))
	}
	if in.Privacy == "" {
		in.Privacy = dbjson.PrivacyPublic
	}
	if !in.Privacy.Valid() {
		return nil, common.Invalid("privacy", "must be public, friends or private")
	}

	stamp := dbjson.NewStamp()
	p := &dbjson.Post{
		ID: dbjson.PostID(stamp),
		// Snapshot, not a live reference: the post keeps showing the
		// author as they were at publish time.
		Author:    u.Snapshot(),
		Content:   in.Content,
		Images:    in.Images,
		Tags:      mergeTags(ExtractTags(in.Content), in.Tags),
		CreatedAt: time.UnixMilli(stamp),
		LikedBy:   []dbjson.UserID{},
		Privacy:   in.Privacy,
	}
	if err := s.posts.InsertPost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *feedService) ListVisible(ctx context.Context, viewer *dbjson.UserID, f Filter) ([]dbjson.Post, error) {
	all, err := s.posts.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]dbjson.Post, 0, len(all))
	for _, p := range all {
		ok, err := s.canView(ctx, viewer, &p)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, p)
		}
	}

	switch f.Mode {
	case FilterHot:
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].HotScore() > visible[j].HotScore()
		})
	case FilterFollowing:
		if viewer == nil {
			return nil, fmt.Errorf("following feed: %w", common.ErrPermission)
		}
		u, err := s.userRepo.GetUserByID(ctx, *viewer)
		if err != nil {
			return nil, err
		}
		// No follows is an empty feed, not an error.
		if len(u.Following) == 0 {
			return []dbjson.Post{}, nil
		}
		out := visible[:0]
		for _, p := range visible {
			if u.IsFollowing(p.Author.ID) {
				out = append(out, p)
			}
		}
		visible = out
		sortByTime(visible)
	case FilterBookmarked:
		if viewer == nil {
			return nil, fmt.Errorf("bookmarked feed: %w", common.ErrPermission)
		}
		u, err := s.userRepo.GetUserByID(ctx, *viewer)
		if err != nil {
			return nil, err
		}
		byID := make(map[dbjson.PostID]dbjson.Post, len(visible))
		for _, p := range visible {
			byID[p.ID] = p
		}
		// Bookmark insertion order, walked backwards: most recently
		// bookmarked first.
		out := make([]dbjson.Post, 0, len(u.Bookmarks))
		for i := len(u.Bookmarks) - 1; i >= 0; i-- {
			if p, ok := byID[u.Bookmarks[i]]; ok {
				out = append(out, p)
			}
		}
		visible = out
	case FilterTag:
		out := visible[:0]
		for _, p := range visible {
			if p.HasTag(f.Tag) {
				out = append(out, p)
			}
		}
		visible = out
		sortByTime(visible)
	default: // latest / all
		sortByTime(visible)
	}

	return visible, nil
}

func (s *feedService) canView(ctx context.Context, viewer *dbjson.UserID, p *dbjson.Post) (bool, error) {
	privacy := p.Privacy
	if privacy == "" {
		privacy = dbjson.PrivacyPublic
	}
	if privacy == dbjson.PrivacyPublic {
		return true, nil
	}
	if viewer == nil {
		return false, nil
	}
	if p.Author.ID == *viewer {
		return true, nil
	}
	if privacy == dbjson.PrivacyPrivate {
		return false, nil
	}
	// friends: visible only across a mutual follow
	return s.graph.IsMutual(ctx, *viewer, p.Author.ID)
}

func (s *feedService) GetPost(ctx context.Context, id dbjson.PostID) (*dbjson.Post, error) {
	return s.posts.GetPostByID(ctx, id)
}

func (s *feedService) Like(ctx context.Context, post dbjson.PostID, by dbjson.UserID) (bool, error) {
	if _, err := s.userRepo.GetUserByID(ctx, by); err != nil {
		return false, err
	}
	p, err := s.posts.GetPostByID(ctx, post)
	if err != nil {
		return false, err
	}

	liked := p.LikedByUser(by)
	if liked {
		out := p.LikedBy[:0]
		for _, id := range p.LikedBy {
			if id != by {
				out = append(out, id)
			}
		}
		p.LikedBy = out
	} else {
		p.LikedBy = append(p.LikedBy, by)
	}
	// Keep the counter welded to the set.
	p.Likes = len(p.LikedBy)

	if err := s.posts.UpdatePost(ctx, p); err != nil {
		return liked, err
	}
	return !liked, nil
}

func (s *feedService) Bookmark(ctx context.Context, post dbjson.PostID, by dbjson.UserID) (bool, error) {
	if _, err := s.posts.GetPostByID(ctx, post); err != nil {
		return false, err
	}
	u, err := s.userRepo.GetUserByID(ctx, by)
	if err != nil {
		return false, err
	}

	bookmarked := u.HasBookmarked(post)
	if bookmarked {
		out := u.Bookmarks[:0]
		for _, id := range u.Bookmarks {
			if id != post {
				out = append(out, id)
			}
		}
		u.Bookmarks = out
	} else {
		u.Bookmarks = append(u.Bookmarks, post)
	}

	if err := s.userRepo.UpdateUser(ctx, u); err != nil {
		return bookmarked, err
	}
	return !bookmarked, nil
}

func (s *feedService) Repost(ctx context.Context, post dbjson.PostID, by dbjson.UserID) (*dbjson.Post, error) {
	u, err := s.userRepo.GetUserByID(ctx, by)
	if err != nil {
		return nil, err
	}
	if u.Banned {
		return nil, common.ErrBanned
	}
	orig, err := s.posts.GetPostByID(ctx, post)
	if err != nil {
		return nil, err
	}

	stamp := dbjson.NewStamp()
	snapshot := *orig
	repost := &dbjson.Post{
		ID:        dbjson.PostID(stamp),
		Author:    u.Snapshot(),
		Content:   fmt.Sprintf("reposted @%s", orig.Author.Name),
		CreatedAt: time.UnixMilli(stamp),
		LikedBy:   []dbjson.UserID{},
		Privacy:   dbjson.PrivacyPublic,
		IsRepost:  true,
		Original:  &snapshot,
	}
	if err := s.posts.InsertPost(ctx, repost); err != nil {
		return nil, err
	}
	if err := s.RecordShare(ctx, orig.ID, "repost"); err != nil {
		return nil, err
	}
	return repost, nil
}

func (s *feedService) RecordShare(ctx context.Context, post dbjson.PostID, platform string) error {
	if platform == "" {
		return common.Invalid("platform", "required")
	}
	p, err := s.posts.GetPostByID(ctx, post)
	if err != nil {
		return err
	}
	if _, err := s.shares.IncrementShare(ctx, post, platform); err != nil {
		return err
	}
	p.Shares++
	return s.posts.UpdatePost(ctx, p)
}

func (s *feedService) ShareCount(ctx context.Context, post dbjson.PostID, platform string) (int, error) {
	return s.shares.ShareCount(ctx, post, platform)
}

func (s *feedService) SetPrivacy(ctx context.Context, post dbjson.PostID, actor dbjson.UserID, privacy dbjson.Privacy) error {
	if !privacy.Valid() {
		return common.Invalid("privacy", "must be public, friends or private")
	}
	p, err := s.posts.GetPostByID(ctx, post)
	if err != nil {
		return err
	}
	if p.Author.ID != actor {
		return fmt.Errorf("set privacy on post %s: %w", post, common.ErrPermission)
	}
	p.Privacy = privacy
	return s.posts.UpdatePost(ctx, p)
}

func (s *feedService) Delete(ctx context.Context, post dbjson.PostID, actor dbjson.UserID) error {
	p, err := s.posts.GetPostByID(ctx, post)
	if err != nil {
		return err
	}
	if p.Author.ID != actor {
		u, err := s.userRepo.GetUserByID(ctx, actor)
		if err != nil {
			return err
		}
		if !u.IsAdmin {
			return fmt.Errorf("delete post %s: %w", post, common.ErrPermission)
		}
	}
	return s.posts.DeletePost(ctx, post)
}

func (s *feedService) Search(ctx context.Context, viewer *dbjson.UserID, query string) ([]dbjson.Post, error) {
	visible, err := s.ListVisible(ctx, viewer, Filter{Mode: FilterLatest})
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return visible, nil
	}
	out := visible[:0]
	for _, p := range visible {
		if strings.Contains(strings.ToLower(p.Content), q) ||
			strings.Contains(strings.ToLower(p.Author.Name), q) ||
			tagMatch(p.Tags, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func tagMatch(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func (s *feedService) TrendingTags(ctx context.Context) ([]TagCount, error) {
	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	var order []string
	for _, p := range posts {
		for _, t := range p.Tags {
			if counts[t] == 0 {
				order = append(order, t)
			}
			counts[t]++
		}
	}

	trending := make([]TagCount, 0, len(order))
	for _, t := range order {
		trending = append(trending, TagCount{Tag: t, Count: counts[t]})
	}
	// Stable sort keeps first-encountered order across equal counts.
	sort.SliceStable(trending, func(i, j int) bool {
		return trending[i].Count > trending[j].Count
	})
	if len(trending) > s.cfg.TrendingLimit {
		trending = trending[:s.cfg.TrendingLimit]
	}
	return trending, nil
}

func sortByTime(posts []dbjson.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
