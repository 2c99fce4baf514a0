//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	chatrepo "campuslife/internal/chat/repository"
	chatsvc "campuslife/internal/chat/service"
	"campuslife/internal/config"
	"campuslife/internal/feed"
	"campuslife/internal/social"
	"campuslife/internal/user"
)

// Declaration only — wire generates the real body in wire_gen.go.
func InitializeApp(cfg config.Config) (*App, error) {
	wire.Build(
		provideStore,
		wire.FieldsOf(new(config.Config), "Auth", "Feed"),
		user.NewUserRepository,
		feed.NewFeedRepository,
		wire.Bind(new(feed.Posts), new(*feed.FeedRepository)),
		wire.Bind(new(feed.Shares), new(*feed.FeedRepository)),
		wire.Bind(new(user.PostLister), new(*feed.FeedRepository)),
		social.NewGraphService,
		user.NewUserService,
		feed.NewFeedService,
		chatrepo.NewChatRepository,
		chatsvc.NewChatService,
		wire.Struct(new(App), "*"),
	)
	return &App{}, nil // dummy for compilation
}
