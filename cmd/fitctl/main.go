// fitctl is the terminal front end: it keeps the bearer credential in a
// token file and gates protected views exactly like the web client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"fittrack/internal/client"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	api := getEnv("FITTRACK_API", "http://localhost:8080")
	tokenPath := os.Getenv("FITTRACK_TOKEN_FILE")
	if tokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("resolve home dir failed: %v", err)
		}
		tokenPath = filepath.Join(home, ".fittrack", "token")
	}

	session, err := client.NewSession(client.NewFileTokenStore(tokenPath))
	if err != nil {
		log.Fatalf("restore session failed: %v", err)
	}
	cli := client.New(api, session)
	ctx := context.Background()

	switch os.Args[1] {
	case "register":
		runRegister(ctx, cli, os.Args[2:])
	case "login":
		runLogin(ctx, cli, os.Args[2:])
	case "logout":
		if err := cli.Logout(); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("logged out")
	case "add":
		runAdd(ctx, cli, os.Args[2:])
	case "list":
		runList(ctx, cli)
	case "stats":
		runStats(ctx, cli)
	case "open":
		runOpen(cli, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: fitctl <command> [flags]

commands:
  register  -username -email -password   create an account
  login     -email -password             log in and store the token
  logout                                 drop the stored token
  add       -name -minutes [-notes]      log an activity
  list                                   show activities, newest first
  stats                                  dashboard totals
  open      <view>                       resolve a view through the session gate`)
}

func runRegister(ctx context.Context, cli *client.Client, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (min 8 chars)")
	_ = fs.Parse(args)

	if err := cli.Register(ctx, *username, *email, *password); err != nil {
		log.Fatalf("register failed: %v", err)
	}
	fmt.Println("registered, now run: fitctl login")
}

func runLogin(ctx context.Context, cli *client.Client, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	if err := cli.Login(ctx, *email, *password); err != nil {
		log.Fatalf("login failed: %v", err)
	}
	fmt.Println("logged in")
}

func runAdd(ctx context.Context, cli *client.Client, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "activity name, e.g. Running")
	minutes := fs.Int("minutes", 0, "duration in minutes")
	notes := fs.String("notes", "", "optional notes")
	_ = fs.Parse(args)

	activity, err := cli.AddActivity(ctx, *name, *minutes, *notes)
	if err != nil {
		log.Fatalf("add activity failed: %v", err)
	}
	fmt.Printf("logged #%d %s (%dm)\n", activity.ID, activity.Name, activity.DurationMinutes)
}

func runList(ctx context.Context, cli *client.Client) {
	activities, err := cli.ListActivities(ctx)
	if err != nil {
		log.Fatalf("list activities failed: %v", err)
	}
	if len(activities) == 0 {
		fmt.Println("no activities yet")
		return
	}
	for _, a := range activities {
		line := fmt.Sprintf("%s  %-12s %3dm", a.Date.Local().Format("2006-01-02 15:04"), a.Name, a.DurationMinutes)
		if a.Notes != "" {
			line += "  " + a.Notes
		}
		fmt.Println(line)
	}
}

func runStats(ctx context.Context, cli *client.Client) {
	summary, _, err := cli.DashboardStats(ctx)
	if err != nil {
		log.Fatalf("load stats failed: %v", err)
	}
	fmt.Printf("activities: %d\n", summary.TotalActivities)
	fmt.Printf("minutes:    %d\n", summary.TotalMinutes)
	fmt.Printf("active days: %d\n", summary.ActiveDays)
}

func runOpen(cli *client.Client, args []string) {
	if len(args) < 1 {
		log.Fatalf("open: view name required")
	}
	target := client.View(args[0])
	resolved := cli.Session().Navigate(target)
	if resolved != target {
		fmt.Printf("%s requires login, showing %s instead\n", target, resolved)
		return
	}
	fmt.Printf("showing %s\n", resolved)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
