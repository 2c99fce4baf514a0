package di

import (
	chatsvc "campuslife/internal/chat/service"
	"campuslife/internal/config"
	"campuslife/internal/dbjson"
	"campuslife/internal/feed"
	"campuslife/internal/social"
	"campuslife/internal/user"
)

// App bundles the wired services handed to the CLI.
type App struct {
	Users user.UserService
	Graph social.GraphService
	Feed  feed.FeedUsecase
	Chat  chatsvc.ChatService
}

func provideStore(cfg config.Config) (*dbjson.Store, error) {
	return dbjson.Open(cfg.Storage.Dir)
}
