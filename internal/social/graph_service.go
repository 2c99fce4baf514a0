package social

import (
	"context"

	"campuslife/internal/common"
	"campuslife/internal/dbjson"
	"campuslife/internal/user"
)

// FollowerEntry pairs a follower with whether the listed user follows
// them back.
type FollowerEntry struct {
	User        dbjson.User
	FollowsBack bool
}

// GraphService maintains the directional follow edges. An edge is stored
// redundantly on both ends (source.Following and target.Followers); every
// toggle updates both sides in a single document write so the two lists
// cannot desynchronize.
type GraphService interface {
	ToggleFollow(ctx context.Context, source, target dbjson.UserID) (following bool, err error)
	IsFollowing(ctx context.Context, source, target dbjson.UserID) (bool, error)
	// IsMutual reports whether a and b follow each other; "friends"
	// privacy hangs off this.
	IsMutual(ctx context.Context, a, b dbjson.UserID) (bool, error)
	Following(ctx context.Context, id dbjson.UserID) ([]dbjson.User, error)
	Followers(ctx context.Context, id dbjson.UserID) ([]FollowerEntry, error)
	Counts(ctx context.Context, id dbjson.UserID) (following, followers int, err error)
	Recommend(ctx context.Context, id dbjson.UserID, limit int) ([]dbjson.User, error)
}

type graphService struct {
	userRepo user.UserRepository
}

func NewGraphService(userRepo user.UserRepository) GraphService {
	return &graphService{userRepo: userRepo}
}

func (s *graphService) ToggleFollow(ctx context.Context, source, target dbjson.UserID) (bool, error) {
	if source == target {
		return false, common.ErrSelfFollow
	}

	src, err := s.userRepo.GetUserByID(ctx, source)
	if err != nil {
		return false, err
	}
	tgt, err := s.userRepo.GetUserByID(ctx, target)
	if err != nil {
		return false, err
	}

	following := src.IsFollowing(target)
	if following {
		src.Following = removeID(src.Following, target)
		tgt.Followers = removeID(tgt.Followers, source)
	} else {
		src.Following = append(src.Following, target)
		tgt.Followers = append(tgt.Followers, source)
	}

	// One save for both sides; a partial update here is the bug this
	// design exists to prevent.
	if err := s.userRepo.UpdateUsers(ctx, src, tgt); err != nil {
		return following, err
	}
	return !following, nil
}

func (s *graphService) IsFollowing(ctx context.Context, source, target dbjson.UserID) (bool, error) {
	src, err := s.userRepo.GetUserByID(ctx, source)
	if err != nil {
		return false, err
	}
	return src.IsFollowing(target), nil
}

func (s *graphService) IsMutual(ctx context.Context, a, b dbjson.UserID) (bool, error) {
	ua, err := s.userRepo.GetUserByID(ctx, a)
	if err != nil {
		return false, err
	}
	ub, err := s.userRepo.GetUserByID(ctx, b)
	if err != nil {
		return false, err
	}
	return ua.IsFollowing(b) && ub.IsFollowing(a), nil
}

func (s *graphService) Following(ctx context.Context, id dbjson.UserID) ([]dbjson.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, u.Following)
}

func (s *graphService) Followers(ctx context.Context, id dbjson.UserID) ([]FollowerEntry, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	users, err := s.resolve(ctx, u.Followers)
	if err != nil {
		return nil, err
	}
	entries := make([]FollowerEntry, 0, len(users))
	for _, f := range users {
		entries = append(entries, FollowerEntry{
			User:        f,
			FollowsBack: u.IsFollowing(f.ID),
		})
	}
	return entries, nil
}

func (s *graphService) Counts(ctx context.Context, id dbjson.UserID) (int, int, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	return len(u.Following), len(u.Followers), nil
}

func (s *graphService) Recommend(ctx context.Context, id dbjson.UserID, limit int) ([]dbjson.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	var out []dbjson.User
	for _, candidate := range all {
		if candidate.ID == id || u.IsFollowing(candidate.ID) {
			continue
		}
		out = append(out, candidate)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// resolve maps ids to users, skipping ids that no longer exist. Dangling
// edges can survive a deleted account; listings just omit them.
func (s *graphService) resolve(ctx context.Context, ids []dbjson.UserID) ([]dbjson.User, error) {
	all, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[dbjson.UserID]dbjson.User, len(all))
	for _, u := range all {
		byID[u.ID] = u
	}
	out := make([]dbjson.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func removeID(ids []dbjson.UserID, id dbjson.UserID) []dbjson.UserID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
