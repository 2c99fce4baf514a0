package repository

import (
	"context"

	"campuslife/internal/dbjson"
)

const messagesDoc = "messages"

// ChatRepository persists the per-pair message logs as one keyed
// collection: conversation key -> append-only message slice.
type ChatRepository interface {
	Append(ctx context.Context, key string, msg *dbjson.Message) error
	FetchHistory(ctx context.Context, key string) ([]dbjson.Message, error)
	AllConversations(ctx context.Context) (map[string][]dbjson.Message, error)
	ReplaceHistory(ctx context.Context, key string, msgs []dbjson.Message) error
}

type chatRepository struct {
	store *dbjson.Store
}

func NewChatRepository(store *dbjson.Store) ChatRepository {
	return &chatRepository{store: store}
}

func (r *chatRepository) load() (map[string][]dbjson.Message, error) {
	var data map[string][]dbjson.Message
	if err := r.store.Read(messagesDoc, &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string][]dbjson.Message{}
	}
	return data, nil
}

func (r *chatRepository) Append(ctx context.Context, key string, msg *dbjson.Message) error {
	data, err := r.load()
	if err != nil {
		return err
	}
	data[key] = append(data[key], *msg)
	return r.store.Write(messagesDoc, data)
}

func (r *chatRepository) FetchHistory(ctx context.Context, key string) ([]dbjson.Message, error) {
	data, err := r.load()
	if err != nil {
		return nil, err
	}
	return data[key], nil
}

func (r *chatRepository) AllConversations(ctx context.Context) (map[string][]dbjson.Message, error) {
	return r.load()
}

func (r *chatRepository) ReplaceHistory(ctx context.Context, key string, msgs []dbjson.Message) error {
	data, err := r.load()
	if err != nil {
		return err
	}
	data[key] = msgs
	return r.store.Write(messagesDoc, data)
}
