package user

import (
	"context"
	"strings"
	"time"

	"campuslife/internal/common"
	"campuslife/internal/config"
	"campuslife/internal/dbjson"
)

type RegisterInput struct {
	StudentID string
	Username  string
	Email     string
	Password  string
	IsAdmin   bool
}

// ProfilePatch updates a profile field by field; empty fields keep the
// current value.
type ProfilePatch struct {
	Username string
	Email    string
	Avatar   string
	Bio      string
}

type UserStats struct {
	PostsCount     int
	FollowersCount int
	FollowingCount int
	TotalLikes     int
	TotalComments  int
	JoinedAt       time.Time
}

// PostLister is the slice of the feed the directory needs for per-user
// stats. Declared here so the feed package stays a downstream consumer.
type PostLister interface {
	ListPostsByAuthor(ctx context.Context, author dbjson.UserID) ([]dbjson.Post, error)
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*dbjson.User, error)
	Login(ctx context.Context, identifier, password string) (*dbjson.User, error)
	GetProfile(ctx context.Context, id dbjson.UserID) (*dbjson.User, error)
	UpdateProfile(ctx context.Context, id dbjson.UserID, patch ProfilePatch) (*dbjson.User, error)
	Ban(ctx context.Context, id dbjson.UserID, reason string) error
	Unban(ctx context.Context, id dbjson.UserID) error
	ResetProfile(ctx context.Context, id dbjson.UserID) error
	Stats(ctx context.Context, id dbjson.UserID) (*UserStats, error)

	Remember(email string) (string, error)
	Redeem(token string) (string, error)
}

type userService struct {
	userRepo UserRepository
	posts    PostLister
	secret   []byte
	validFor time.Duration
}

func NewUserService(userRepo UserRepository, posts PostLister, cfg config.AuthConfig) UserService {
	return &userService{
		userRepo: userRepo,
		posts:    posts,
		secret:   []byte(cfg.TokenSecret),
		validFor: time.Duration(cfg.RememberDays) * 24 * time.Hour,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*dbjson.User, error) {
	in.StudentID = strings.TrimSpace(in.StudentID)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.StudentID == "" {
		return nil, common.Invalid("studentId", "required")
	}
	if in.Username == "" || in.Password == "" {
		return nil, common.Invalid("registration", "all fields are required")
	}
	if err := common.ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := common.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	// Duplicate checks, in the original's order.
	if taken, err := s.userRepo.StudentIDExists(ctx, in.StudentID); err != nil {
		return nil, err
	} else if taken {
		return nil, common.Conflict("student id")
	}
	if taken, err := s.userRepo.UsernameExists(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, common.Conflict("username")
	}
	if taken, err := s.userRepo.EmailExists(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, common.Conflict("email")
	}

	bio := dbjson.DefaultBio
	if in.IsAdmin {
		bio = dbjson.AdminBio
	}
	u := &dbjson.User{
		ID:        dbjson.UserID(dbjson.NewStamp()),
		StudentID: in.StudentID,
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		Avatar:    dbjson.DefaultAvatar,
		Bio:       bio,
		JoinedAt:  time.Now(),
		Followers: []dbjson.UserID{},
		Following: []dbjson.UserID{},
		Bookmarks: []dbjson.PostID{},
		IsAdmin:   in.IsAdmin,
	}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Login(ctx context.Context, identifier, password string) (*dbjson.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, common.Invalid("login", "identifier and password are required")
	}

	u, err := s.userRepo.FindByLogin(ctx, identifier)
	if err != nil {
		return nil, err
	}
	// Exact-value comparison. Plaintext credentials are the persisted
	// contract of this system, not an oversight.
	if u.Password != password {
		return nil, common.ErrBadCredential
	}
	if u.Banned {
		return nil, common.ErrBanned
	}
	return u, nil
}

func (s *userService) GetProfile(ctx context.Context, id dbjson.UserID) (*dbjson.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id dbjson.UserID, patch ProfilePatch) (*dbjson.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != "" && patch.Username != u.Username {
		if err := common.ValidateUsername(patch.Username); err != nil {
			return nil, err
		}
		if taken, err := s.userRepo.UsernameExists(ctx, patch.Username); err != nil {
			return nil, err
		} else if taken {
			return nil, common.Conflict("username")
		}
		u.Username = patch.Username
	}
	if patch.Email != "" && patch.Email != u.Email {
		if err := common.ValidateEmail(patch.Email); err != nil {
			return nil, err
		}
		if taken, err := s.userRepo.EmailExists(ctx, patch.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, common.Conflict("email")
		}
		u.Email = patch.Email
	}
	if patch.Avatar != "" {
		u.Avatar = patch.Avatar
	}
	if patch.Bio != "" {
		u.Bio = patch.Bio
	}

	if err := s.userRepo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Ban(ctx context.Context, id dbjson.UserID, reason string) error {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	u.Banned = true
	u.BanReason = reason
	u.BannedAt = &now
	return s.userRepo.UpdateUser(ctx, u)
}

func (s *userService) Unban(ctx context.Context, id dbjson.UserID) error {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	u.Banned = false
	u.BanReason = ""
	u.BannedAt = nil
	return s.userRepo.UpdateUser(ctx, u)
}

func (s *userService) ResetProfile(ctx context.Context, id dbjson.UserID) error {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	u.Bio = dbjson.DefaultBio
	u.Avatar = dbjson.DefaultAvatar
	return s.userRepo.UpdateUser(ctx, u)
}

func (s *userService) Stats(ctx context.Context, id dbjson.UserID) (*UserStats, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListPostsByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := &UserStats{
		PostsCount:     len(posts),
		FollowersCount: len(u.Followers),
		FollowingCount: len(u.Following),
		JoinedAt:       u.JoinedAt,
	}
	for i := range posts {
		stats.TotalLikes += posts[i].Likes
		stats.TotalComments += posts[i].Comments
	}
	return stats, nil
}

func (s *userService) Remember(email string) (string, error) {
	if err := common.ValidateEmail(email); err != nil {
		return "", err
	}
	return common.RememberToken(s.secret, email, s.validFor)
}

func (s *userService) Redeem(token string) (string, error) {
	return common.RedeemRememberToken(s.secret, token)
}
