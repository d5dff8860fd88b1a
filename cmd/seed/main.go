// Package main provides a tool to seed the database with users and demo banners.
//
// Banner tokens are opaque strings handed out manually, so this is the way to
// mint credentials for a fresh installation.
//
// Usage:
//
//	go run ./cmd/seed -username root -admin
//	go run ./cmd/seed -username alice
//	go run ./cmd/seed -list
//	go run ./cmd/seed -username root -admin -demo  # also create demo banners
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bannerdeck/banner-server/internal/domain"
	"github.com/bannerdeck/banner-server/internal/id"
	"github.com/bannerdeck/banner-server/internal/store"
	"github.com/bannerdeck/banner-server/internal/store/sqlite"
)

var (
	dbPath   = flag.String("db-path", "", "Path to the SQLite database (default $HOME/bannerdeck/banners.db)")
	username = flag.String("username", "", "Username for the new user")
	admin    = flag.Bool("admin", false, "Give the new user admin rights")
	list     = flag.Bool("list", false, "List existing users and exit")
	demo     = flag.Bool("demo", false, "Create a few demo banners")
)

func main() {
	flag.Parse()

	path := *dbPath
	if path == "" {
		path = os.Getenv("DB_PATH")
	}
	if path == "" {
		path = os.ExpandEnv("$HOME/bannerdeck/banners.db")
	}

	fmt.Printf("Opening database at: %s\n", path)

	s, err := sqlite.Open(path, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if *list {
		listUsers(ctx, s)
		return
	}

	if *username == "" {
		log.Fatal("Provide -username (or -list to inspect existing users)")
	}

	token, err := id.NewToken()
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	user := &domain.User{
		Username: *username,
		Token:    token,
		Admin:    *admin,
	}
	if err := s.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	role := "user"
	if *admin {
		role = "admin"
	}
	fmt.Printf("Created %s %q (id %d)\n", role, user.Username, user.ID)
	fmt.Printf("Token: %s\n", token)

	if *demo {
		createDemoBanners(ctx, s)
	}
}

func listUsers(ctx context.Context, s store.Store) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}
	if len(users) == 0 {
		fmt.Println("No users in database")
		return
	}
	for _, u := range users {
		role := "user"
		if u.Admin {
			role = "admin"
		}
		fmt.Printf("%4d  %-5s  %s\n", u.ID, role, u.Username)
	}
}

func createDemoBanners(ctx context.Context, s store.Store) {
	demos := []struct {
		featureID int64
		tagIDs    []int64
		content   string
		active    bool
	}{
		{1, []int64{1, 2}, `{"title":"Welcome!","text":"Thanks for signing up","url":"/onboarding"}`, true},
		{1, []int64{3}, `{"title":"Beta program","text":"Try the new dashboard","url":"/beta"}`, true},
		{2, []int64{1}, `{"title":"Maintenance","text":"Scheduled downtime Sunday 02:00 UTC"}`, false},
	}

	for _, d := range demos {
		bannerID, err := s.CreateBanner(ctx, d.featureID, d.content, d.active, d.tagIDs)
		if err != nil {
			log.Fatalf("Failed to create demo banner: %v", err)
		}
		fmt.Printf("Created banner %d (feature %d, tags %v)\n", bannerID, d.featureID, d.tagIDs)
	}
}
