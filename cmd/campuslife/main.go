package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"campuslife/internal/config"
	"campuslife/internal/dbjson"
	"campuslife/internal/di"
	"campuslife/internal/feed"
	"campuslife/internal/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	cfg := config.Load()
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := run(ctx, app, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: campuslife <command> [flags]

commands:
  register   create an account
  login      log in by student id or email
  publish    publish a post
  feed       list the visible feed
  like       toggle a like
  bookmark   toggle a bookmark
  repost     repost a post
  share      record a share
  follow     toggle a follow edge
  followers  list a user's followers
  recommend  suggest users to follow
  trending   show trending tags
  send       send a direct message
  inbox      list conversations
  history    show a conversation
  read       mark a conversation as read
  privacy    change a post's privacy
  delete     delete a post
  ban        ban a user (admin)
  unban      unban a user (admin)
  reset      restore a user's default bio and avatar
  redeem     redeem a remember-me token
  stats      show user stats
  search     search visible posts`)
}

func run(ctx context.Context, app *di.App, command string, args []string) error {
	switch command {
	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		student := fs.String("student", "", "student id")
		name := fs.String("name", "", "display name")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		admin := fs.Bool("admin", false, "register as admin")
		fs.Parse(args)
		u, err := app.Users.Register(ctx, user.RegisterInput{
			StudentID: *student,
			Username:  *name,
			Email:     *email,
			Password:  *password,
			IsAdmin:   *admin,
		})
		if err != nil {
			return err
		}
		fmt.Printf("registered %s (id %s)\n", u.Username, u.ID)
		return nil

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		id := fs.String("id", "", "student id or email")
		password := fs.String("password", "", "password")
		remember := fs.Bool("remember", false, "issue a remember-me token")
		fs.Parse(args)
		u, err := app.Users.Login(ctx, *id, *password)
		if err != nil {
			return err
		}
		fmt.Printf("welcome back, %s (id %s)\n", u.Username, u.ID)
		if *remember {
			token, err := app.Users.Remember(u.Email)
			if err != nil {
				return err
			}
			fmt.Printf("remember-me token: %s\n", token)
		}
		return nil

	case "publish":
		fs := flag.NewFlagSet("publish", flag.ExitOnError)
		author := fs.String("author", "", "author user id")
		content := fs.String("content", "", "post content")
		privacy := fs.String("privacy", "public", "public|friends|private")
		tags := fs.String("tags", "", "extra tags, comma separated")
		fs.Parse(args)
		authorID, err := dbjson.ParseUserID(*author)
		if err != nil {
			return fmt.Errorf("bad -author: %w", err)
		}
		var extras []string
		if *tags != "" {
			extras = strings.Split(*tags, ",")
		}
		p, err := app.Feed.Publish(ctx, authorID, feed.PublishInput{
			Content: *content,
			Tags:    extras,
			Privacy: dbjson.Privacy(*privacy),
		})
		if err != nil {
			return err
		}
		fmt.Printf("published post %s\n", p.ID)
		return nil

	case "feed":
		fs := flag.NewFlagSet("feed", flag.ExitOnError)
		viewer := fs.String("viewer", "", "viewer user id (empty for anonymous)")
		mode := fs.String("mode", "latest", "all|latest|hot|following|bookmarked|tag")
		tag := fs.String("tag", "", "tag for -mode tag")
		fs.Parse(args)
		viewerID, err := parseViewer(*viewer)
		if err != nil {
			return err
		}
		posts, err := app.Feed.ListVisible(ctx, viewerID, feed.Filter{Mode: feed.FilterMode(*mode), Tag: *tag})
		if err != nil {
			return err
		}
		printPosts(posts)
		return nil

	case "like", "bookmark", "repost":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		post := fs.String("post", "", "post id")
		who := fs.String("user", "", "acting user id")
		fs.Parse(args)
		postID, err := dbjson.ParsePostID(*post)
		if err != nil {
			return fmt.Errorf("bad -post: %w", err)
		}
		userID, err := dbjson.ParseUserID(*who)
		if err != nil {
			return fmt.Errorf("bad -user: %w", err)
		}
		switch command {
		case "like":
			liked, err := app.Feed.Like(ctx, postID, userID)
			if err != nil {
				return err
			}
			fmt.Printf("liked=%v\n", liked)
		case "bookmark":
			bookmarked, err := app.Feed.Bookmark(ctx, postID, userID)
			if err != nil {
				return err
			}
			fmt.Printf("bookmarked=%v\n", bookmarked)
		case "repost":
			p, err := app.Feed.Repost(ctx, postID, userID)
			if err != nil {
				return err
			}
			fmt.Printf("reposted as %s\n", p.ID)
		}
		return nil

	case "share":
		fs := flag.NewFlagSet("share", flag.ExitOnError)
		post := fs.String("post", "", "post id")
		platform := fs.String("platform", "link", "share platform")
		fs.Parse(args)
		postID, err := dbjson.ParsePostID(*post)
		if err != nil {
			return fmt.Errorf("bad -post: %w", err)
		}
		if err := app.Feed.RecordShare(ctx, postID, *platform); err != nil {
			return err
		}
		n, err := app.Feed.ShareCount(ctx, postID, *platform)
		if err != nil {
			return err
		}
		fmt.Printf("shared on %s (%d total)\n", *platform, n)
		return nil

	case "follow":
		fs := flag.NewFlagSet("follow", flag.ExitOnError)
		from := fs.String("from", "", "source user id")
		to := fs.String("to", "", "target user id")
		fs.Parse(args)
		fromID, err := dbjson.ParseUserID(*from)
		if err != nil {
			return fmt.Errorf("bad -from: %w", err)
		}
		toID, err := dbjson.ParseUserID(*to)
		if err != nil {
			return fmt.Errorf("bad -to: %w", err)
		}
		following, err := app.Graph.ToggleFollow(ctx, fromID, toID)
		if err != nil {
			return err
		}
		fmt.Printf("following=%v\n", following)
		return nil

	case "followers":
		fs := flag.NewFlagSet("followers", flag.ExitOnError)
		who := fs.String("user", "", "user id")
		fs.Parse(args)
		userID, err := dbjson.ParseUserID(*who)
		if err != nil {
			return fmt.Errorf("bad -user: %w", err)
		}
		entries, err := app.Graph.Followers(ctx, userID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			mark := ""
			if e.FollowsBack {
				mark = " (follows back)"
			}
			fmt.Printf("%s\t%s%s\n", e.User.ID, e.User.Username, mark)
		}
		return nil

	case "recommend":
		fs := flag.NewFlagSet("recommend", flag.ExitOnError)
		who := fs.String("user", "", "user id")
		limit := fs.Int("limit", 5, "max suggestions")
		fs.Parse(args)
		userID, err := dbjson.ParseUserID(*who)
		if err != nil {
			return fmt.Errorf("bad -user: %w", err)
		}
		recs, err := app.Graph.Recommend(ctx, userID, *limit)
		if err != nil {
			return err
		}
		for _, r := range recs {
			fmt.Printf("%s\t%s\n", r.ID, r.Username)
		}
		return nil

	case "trending":
		tags, err := app.Feed.TrendingTags(ctx)
		if err != nil {
			return err
		}
		for _, t := range tags {
			fmt.Printf("#%s\t%d\n", t.Tag, t.Count)
		}
		return nil

	case "send":
		fs := flag.NewFlagSet("send", flag.ExitOnError)
		from := fs.String("from", "", "sender user id")
		to := fs.String("to", "", "receiver user id")
		content := fs.String("content", "", "message content")
		fs.Parse(args)
		fromID, err := dbjson.ParseUserID(*from)
		if err != nil {
			return fmt.Errorf("bad -from: %w", err)
		}
		toID, err := dbjson.ParseUserID(*to)
		if err != nil {
			return fmt.Errorf("bad -to: %w", err)
		}
		msg, err := app.Chat.SendMessage(ctx, fromID, toID, *content)
		if err != nil {
			return err
		}
		fmt.Printf("sent %s\n", msg.ID)
		return nil

	case "inbox":
		fs := flag.NewFlagSet("inbox", flag.ExitOnError)
		who := fs.String("user", "", "user id")
		fs.Parse(args)
		userID, err := dbjson.ParseUserID(*who)
		if err != nil {
			return fmt.Errorf("bad -user: %w", err)
		}
		conversations, err := app.Chat.ListConversations(ctx, userID)
		if err != nil {
			return err
		}
		for _, c := range conversations {
			fmt.Printf("%s\t(%d unread)\t%s\n", c.With.Username, c.UnreadCount, c.LastMessage.Content)
		}
		return nil

	case "history":
		fs := flag.NewFlagSet("history", flag.ExitOnError)
		a := fs.String("a", "", "first user id")
		b := fs.String("b", "", "second user id")
		fs.Parse(args)
		aID, err := dbjson.ParseUserID(*a)
		if err != nil {
			return fmt.Errorf("bad -a: %w", err)
		}
		bID, err := dbjson.ParseUserID(*b)
		if err != nil {
			return fmt.Errorf("bad -b: %w", err)
		}
		msgs, err := app.Chat.History(ctx, aID, bID)
		if err != nil {
			return err
		}
		for _, m := range msgs {
			fmt.Printf("[%s] %s -> %s: %s\n", m.SentAt.Format("2006-01-02 15:04"), m.SenderID, m.ReceiverID, m.Content)
		}
		return nil

	case "read":
		fs := flag.NewFlagSet("read", flag.ExitOnError)
		who := fs.String("user", "", "reading user id")
		other := fs.String("other", "", "conversation counterpart id")
		fs.Parse(args)
		userID, err := dbjson.ParseUserID(*who)
		if err != nil {
			return fmt.Errorf("bad -user: %w", err)
		}
		otherID, err := dbjson.ParseUserID(*other)
		if err != nil {
			return fmt.Errorf("bad -other: %w", err)
		}
		n, err := app.Chat.MarkRead(ctx, userID, otherID)
		if err != nil {
			return err
		}
		fmt.Printf("marked %d messages read\n", n)
		return nil

	case "privacy":
		fs := flag.NewFlagSet("privacy", flag.ExitOnError)
		post := fs.String("post", "", "post id")
		actor := fs.String("user", "", "acting user id")
		level := fs.String("level", "public", "public|friends|private")
		fs.Parse(args)
		postID, err := dbjson.ParsePostID(*post)
		if err != nil {
			return fmt.Errorf("bad -post: %w", err)
		}
		actorID, err := dbjson.ParseUserID(*actor)
		if err != nil {
			return fmt.Errorf("bad -user: %w", err)
		}
		return app.Feed.SetPrivacy(ctx, postID, actorID, dbjson.Privacy(*level))

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		post := fs.String("post", "", "post id")
		actor := fs.String("user", "", "acting user id")
		fs.Parse(args)
		postID, err := dbjson.ParsePostID(*post)
		if err != nil {
			return fmt.Errorf("bad -post: %w", err)
		}
		actorID, err := dbjson.ParseUserID(*actor)
		if err != nil {
			return fmt.Errorf("bad -user: %w", err)
		}
		return app.Feed.Delete(ctx, postID, actorID)

	case "redeem":
		fs := flag.NewFlagSet("redeem", flag.ExitOnError)
		token := fs.String("token", "", "remember-me token")
		fs.Parse(args)
		email, err := app.Users.Redeem(*token)
		if err != nil {
			return err
		}
		fmt.Printf("remembered login: %s\n", email)
		return nil

	case "reset":
		fs := flag.NewFlagSet("reset", flag.ExitOnError)
		who := fs.String("user", "", "user id")
		fs.Parse(args)
		userID, err := dbjson.ParseUserID(*who)
		if err != nil {
			return fmt.Errorf("bad -user: %w", err)
		}
		return app.Users.ResetProfile(ctx, userID)

	case "ban":
		fs := flag.NewFlagSet("ban", flag.ExitOnError)
		who := fs.String("user", "", "user id")
		reason := fs.String("reason", "", "ban reason")
		fs.Parse(args)
		userID, err := dbjson.ParseUserID(*who)
		if err != nil {
			return fmt.Errorf("bad -user: %w", err)
		}
		return app.Users.Ban(ctx, userID, *reason)

	case "unban":
		fs := flag.NewFlagSet("unban", flag.ExitOnError)
		who := fs.String("user", "", "user id")
		fs.Parse(args)
		userID, err := dbjson.ParseUserID(*who)
		if err != nil {
			return fmt.Errorf("bad -user: %w", err)
		}
		return app.Users.Unban(ctx, userID)

	case "stats":
		fs := flag.NewFlagSet("stats", flag.ExitOnError)
		who := fs.String("user", "", "user id")
		fs.Parse(args)
		userID, err := dbjson.ParseUserID(*who)
		if err != nil {
			return fmt.Errorf("bad -user: %w", err)
		}
		stats, err := app.Users.Stats(ctx, userID)
		if err != nil {
			return err
		}
		fmt.Printf("posts %d, followers %d, following %d, likes %d, comments %d, joined %s\n",
			stats.PostsCount, stats.FollowersCount, stats.FollowingCount,
			stats.TotalLikes, stats.TotalComments, stats.JoinedAt.Format("2006-01-02"))
		return nil

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		viewer := fs.String("viewer", "", "viewer user id (empty for anonymous)")
		query := fs.String("query", "", "search text")
		fs.Parse(args)
		viewerID, err := parseViewer(*viewer)
		if err != nil {
			return err
		}
		posts, err := app.Feed.Search(ctx, viewerID, *query)
		if err != nil {
			return err
		}
		printPosts(posts)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func parseViewer(s string) (*dbjson.UserID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := dbjson.ParseUserID(s)
	if err != nil {
		return nil, fmt.Errorf("bad -viewer: %w", err)
	}
	return &id, nil
}

func printPosts(posts []dbjson.Post) {
	for _, p := range posts {
		tags := ""
		if len(p.Tags) > 0 {
			tags = " #" + strings.Join(p.Tags, " #")
		}
		fmt.Printf("%s  %s [%s]: %s%s  (likes %d, comments %d, shares %d)\n",
			p.ID, p.Author.Name, p.Privacy, p.Content, tags, p.Likes, p.Comments, p.Shares)
	}
}
