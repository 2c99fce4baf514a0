package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"campuslife/internal/chat/repository"
	"campuslife/internal/common"
	"campuslife/internal/dbjson"
	"campuslife/internal/user"
)

const maxMessageLen = 500

// ConversationKey canonicalizes a user pair: ids sorted ascending, joined
// with an underscore. The same two users always map to the same log no
// matter who writes first.
func ConversationKey(a, b dbjson.UserID) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

// ConversationSummary is one row of a user's inbox.
type ConversationSummary struct {
	With        dbjson.User
	LastMessage dbjson.Message
	UnreadCount int
}

type ChatService interface {
	SendMessage(ctx context.Context, sender, receiver dbjson.UserID, content string) (*dbjson.Message, error)
	History(ctx context.Context, a, b dbjson.UserID) ([]dbjson.Message, error)
	// ListConversations returns one summary per conversation the user
	// participates in, newest activity first.
	ListConversations(ctx context.Context, userID dbjson.UserID) ([]ConversationSummary, error)
	// MarkRead flips the read flag on messages addressed to userID in the
	// conversation with otherID and reports how many changed.
	MarkRead(ctx context.Context, userID, otherID dbjson.UserID) (int, error)
}

type chatService struct {
	repo     repository.ChatRepository
	userRepo user.UserRepository
}

func NewChatService(repo repository.ChatRepository, userRepo user.UserRepository) ChatService {
	return &chatService{repo: repo, userRepo: userRepo}
}

func (s *chatService) SendMessage(ctx context.Context, sender, receiver dbjson.UserID, content string) (*dbjson.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.Invalid("message", "content is required")
	}
	if len([]rune(content)) > maxMessageLen {
		return nil, common.Invalid("message", fmt.Sprintf("at most %d characters", maxMessageLen))
	}
	if sender == receiver {
		return nil, common.Invalid("receiver", "cannot message yourself")
	}
	if _, err := s.userRepo.GetUserByID(ctx, sender); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetUserByID(ctx, receiver); err != nil {
		return nil, err
	}

	msg := &dbjson.Message{
		ID:         uuid.NewString(),
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		SentAt:     time.Now(),
	}
	if err := s.repo.Append(ctx, ConversationKey(sender, receiver), msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *chatService) History(ctx context.Context, a, b dbjson.UserID) ([]dbjson.Message, error) {
	return s.repo.FetchHistory(ctx, ConversationKey(a, b))
}

func (s *chatService) ListConversations(ctx context.Context, userID dbjson.UserID) ([]ConversationSummary, error) {
	data, err := s.repo.AllConversations(ctx)
	if err != nil {
		return nil, err
	}

	var summaries []ConversationSummary
	for key, msgs := range data {
		if len(msgs) == 0 {
			continue
		}
		a, b, ok := splitKey(key)
		if !ok || (a != userID && b != userID) {
			continue
		}
		other := a
		if other == userID {
			other = b
		}
		// Conversations with a vanished counterpart are skipped, not
		// surfaced as errors.
		otherUser, err := s.userRepo.GetUserByID(ctx, other)
		if errors.Is(err, common.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		unread := 0
		for i := range msgs {
			if msgs[i].ReceiverID == userID && !msgs[i].Read {
				unread++
			}
		}
		summaries = append(summaries, ConversationSummary{
			With:        *otherUser,
			LastMessage: msgs[len(msgs)-1],
			UnreadCount: unread,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastMessage.SentAt.After(summaries[j].LastMessage.SentAt)
	})
	return summaries, nil
}

func (s *chatService) MarkRead(ctx context.Context, userID, otherID dbjson.UserID) (int, error) {
	key := ConversationKey(userID, otherID)
	msgs, err := s.repo.FetchHistory(ctx, key)
	if err != nil {
		return 0, err
	}
	changed := 0
	for i := range msgs {
		if msgs[i].ReceiverID == userID && !msgs[i].Read {
			msgs[i].Read = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := s.repo.ReplaceHistory(ctx, key, msgs); err != nil {
		return 0, err
	}
	return changed, nil
}

func splitKey(key string) (dbjson.UserID, dbjson.UserID, bool) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, errA := dbjson.ParseUserID(parts[0])
	b, errB := dbjson.ParseUserID(parts[1])
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	return a, b, true
}
