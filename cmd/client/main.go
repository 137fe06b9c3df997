package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/atinyakov/hackorsnooze/internal/client/api"
	"github.com/atinyakov/hackorsnooze/internal/client/credcache"
	"github.com/atinyakov/hackorsnooze/internal/client/session"
	"github.com/atinyakov/hackorsnooze/internal/logger"
	"github.com/atinyakov/hackorsnooze/internal/models"
)

var (
	version   string
	buildDate string
)

// app bundles everything a REPL command needs.
type app struct {
	client  *api.Client
	ctrl    *session.Controller
	stories *session.StoryList
	scanner *bufio.Scanner
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(a.scanner.Text())
}

// fail prints the uniform operation-failed line for any command error.
func fail(err error) {
	fmt.Printf("Operation failed: %v. Please try again.\n", err)
}

func printStory(s session.Story, marker string) {
	host, err := s.HostName()
	if err != nil {
		// Malformed URL: show the raw URL instead of a host.
		host = s.URL
	}
	fmt.Printf("%s%s (%s)\n    by %s | posted by %s | id %s\n",
		marker, s.Title, host, s.Author, s.Username, s.ID)
}

func printStories(stories []session.Story, user *session.User) {
	if len(stories) == 0 {
		fmt.Println("No stories.")
		return
	}
	for _, s := range stories {
		marker := "  "
		if user != nil && user.IsFavorite(s.ID) {
			marker = "* "
		}
		printStory(s, marker)
	}
}

func (a *app) cmdLogin(ctx context.Context) {
	username := a.prompt("Username: ")
	password := a.prompt("Password: ")
	user, err := a.ctrl.Login(ctx, username, password)
	if err != nil {
		fail(err)
		return
	}
	fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Name)
}

func (a *app) cmdSignup(ctx context.Context) {
	name := a.prompt("Name: ")
	username := a.prompt("Username: ")
	password := a.prompt("Password: ")
	user, err := a.ctrl.Signup(ctx, username, password, name)
	if err != nil {
		fail(err)
		return
	}
	fmt.Printf("Welcome, %s! You are logged in as %s\n", user.Name, user.Username)
}

func (a *app) cmdSubmit(ctx context.Context) {
	payload := models.StoryPayload{
		Title:  a.prompt("Title: "),
		Author: a.prompt("Author: "),
		URL:    a.prompt("URL: "),
	}
	story, err := a.stories.Add(ctx, a.client, a.ctrl.Current(), payload)
	if err != nil {
		fail(err)
		return
	}
	fmt.Printf("Story submitted with id %s\n", story.ID)
}

func (a *app) cmdUser() {
	user := a.ctrl.Current()
	if user == nil {
		fmt.Println("Not logged in.")
		return
	}
	fmt.Printf("Username: %s\nName: %s\nJoined: %s\nFavorites: %d\nOwn stories: %d\n",
		user.Username, user.Name, user.CreatedAt.Format("2006-01-02"),
		len(user.Favorites), len(user.OwnStories))
}

// repl runs the interactive shell loop, accepting commands to browse
// and submit stories and to manage the session.
func repl(a *app) {
	ctx := context.Background()

	for {
		fmt.Print("hackorsnooze> ")
		if !a.scanner.Scan() {
			break
		}
		line := strings.TrimSpace(a.scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		user := a.ctrl.Current()
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, stories, submit, delete <id>, favorite <id>, unfavorite <id>, favorites, mine, login, signup, user, logout, exit")
		case "stories":
			printStories(a.stories.Stories, user)
		case "submit":
			a.cmdSubmit(ctx)
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			if err := a.stories.Remove(ctx, a.client, user, args[1]); err != nil {
				fail(err)
			} else {
				fmt.Println("Story deleted")
			}
		case "favorite":
			if len(args) < 2 {
				fmt.Println("Usage: favorite <id>")
				continue
			}
			if user == nil {
				fmt.Println("Log in to manage favorites.")
				continue
			}
			if err := user.Favorite(ctx, a.client, args[1]); err != nil {
				fail(err)
			} else {
				fmt.Println("Story added to favorites")
			}
		case "unfavorite":
			if len(args) < 2 {
				fmt.Println("Usage: unfavorite <id>")
				continue
			}
			if user == nil {
				fmt.Println("Log in to manage favorites.")
				continue
			}
			if err := user.Unfavorite(ctx, a.client, args[1]); err != nil {
				fail(err)
			} else {
				fmt.Println("Story removed from favorites")
			}
		case "favorites":
			if user == nil {
				fmt.Println("Log in to see favorites.")
				continue
			}
			printStories(user.Favorites, user)
		case "mine":
			if user == nil {
				fmt.Println("Log in to see your stories.")
				continue
			}
			printStories(user.OwnStories, user)
		case "login":
			a.cmdLogin(ctx)
		case "signup":
			a.cmdSignup(ctx)
		case "user":
			a.cmdUser()
		case "logout":
			if err := a.ctrl.Logout(); err != nil {
				fail(err)
			} else {
				fmt.Println("Logged out")
			}
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags, restores any cached session, fetches
// the story listing, and starts the shell.
func main() {
	var (
		baseURL   string
		cachePath string
		verbose   bool
		showVer   bool
	)

	flag.StringVar(&baseURL, "url", "https://hack-or-snooze-v3.herokuapp.com", "service base URL")
	flag.StringVar(&cachePath, "cache", "credentials.json", "path to the credential cache file")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Hack or Snooze Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	lg := logger.New()
	level := "warn"
	if verbose {
		level = "debug"
	}
	if err := lg.Init(level); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Log.Sync() }()

	client := api.New(baseURL, &http.Client{}, lg.Log)
	cache := credcache.New(cachePath)
	ctrl := session.NewController(client, cache, lg.Log)

	ctx := context.Background()

	// Restore first, then fetch stories unconditionally: the listing is
	// public and does not depend on the session outcome.
	if user := ctrl.Restore(ctx); user != nil {
		fmt.Printf("Welcome back, %s\n", user.Username)
	}

	stories, err := session.FetchStoryList(ctx, client)
	if err != nil {
		log.Fatalf("could not fetch stories: %v", err)
	}

	a := &app{
		client:  client,
		ctrl:    ctrl,
		stories: stories,
		scanner: bufio.NewScanner(os.Stdin),
	}
	repl(a)
}
