package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"campuslife/internal/config"
	"campuslife/internal/dbjson"
	"campuslife/internal/di"
	"campuslife/internal/feed"
	"campuslife/internal/user"
)

// seed fills an empty data directory with a few accounts and posts so
// the CLI has something to show. Running it twice fails on the duplicate
// student ids, which is the intended guard against double seeding.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	cfg := config.Load()
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	ctx := context.Background()

	accounts := []user.RegisterInput{
		{StudentID: "admin", Username: "admin", Email: "admin@campus.edu", Password: "admin123", IsAdmin: true},
		{StudentID: "2023010101", Username: "Ming Li", Email: "ming@campus.edu", Password: "pass123"},
		{StudentID: "2023010102", Username: "Hua Wang", Email: "hua@campus.edu", Password: "pass123"},
		{StudentID: "2023010103", Username: "Jie Zhang", Email: "jie@campus.edu", Password: "pass123"},
	}

	registered := make([]int64, 0, len(accounts))
	for _, in := range accounts {
		u, err := app.Users.Register(ctx, in)
		if err != nil {
			log.Fatalf("seed register %s: %v", in.Username, err)
		}
		registered = append(registered, int64(u.ID))
		log.Printf("created %s (id %d)", u.Username, u.ID)
	}

	ming, hua, jie := registered[1], registered[2], registered[3]

	// Ming and Hua follow each other; Jie follows Ming one way.
	follows := [][2]int64{{ming, hua}, {hua, ming}, {jie, ming}}
	for _, f := range follows {
		if _, err := app.Graph.ToggleFollow(ctx, toID(f[0]), toID(f[1])); err != nil {
			log.Fatalf("seed follow: %v", err)
		}
	}

	posts := []struct {
		author  int64
		content string
		privacy string
	}{
		{ming, "First day back on campus, the gingko trees are turning #autumn #campus", "public"},
		{ming, "Library study session tonight, who's in? #study", "friends"},
		{hua, "Tryouts for the badminton team this Friday #badminton #sports", "public"},
		{jie, "Notes to self about the algorithms midterm", "private"},
		{hua, "Canteen two has a new noodle window and it is great #food #campus", "public"},
	}
	published := make([]int64, 0, len(posts))
	for _, p := range posts {
		out, err := app.Feed.Publish(ctx, toID(p.author), feed.PublishInput{
			Content: p.content,
			Privacy: privacy(p.privacy),
		})
		if err != nil {
			log.Fatalf("seed publish: %v", err)
		}
		published = append(published, int64(out.ID))
	}

	// A little engagement so hot and trending have signal.
	for _, liker := range []int64{hua, jie} {
		if _, err := app.Feed.Like(ctx, toPostID(published[0]), toID(liker)); err != nil {
			log.Fatalf("seed like: %v", err)
		}
	}
	if _, err := app.Feed.Bookmark(ctx, toPostID(published[2]), toID(ming)); err != nil {
		log.Fatalf("seed bookmark: %v", err)
	}
	if err := app.Feed.RecordShare(ctx, toPostID(published[0]), "wechat"); err != nil {
		log.Fatalf("seed share: %v", err)
	}

	if _, err := app.Chat.SendMessage(ctx, toID(hua), toID(ming), "See you at the library at 7?"); err != nil {
		log.Fatalf("seed message: %v", err)
	}
	if _, err := app.Chat.SendMessage(ctx, toID(ming), toID(hua), "Deal. Bring the stats notes."); err != nil {
		log.Fatalf("seed message: %v", err)
	}

	log.Printf("seeded %d users and %d posts into %s", len(registered), len(published), cfg.Storage.Dir)
}

func toID(n int64) dbjson.UserID { return dbjson.UserID(n) }

func toPostID(n int64) dbjson.PostID { return dbjson.PostID(n) }

func privacy(s string) dbjson.Privacy { return dbjson.Privacy(s) }
