package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"coverhub/internal/auth"
	"coverhub/pkg/database"
	"coverhub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type coverListResponse struct {
	Total int            `json:"total"`
	Items []models.Cover `json:"items"`
}

func main() {
	global := flag.NewFlagSet("coverhub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	rest := []string{}
	if len(args) > 1 {
		sub = args[1]
		rest = args[2:]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, rest)
	case "covers":
		handleCovers(ctx, client, *baseURL, *tokenPath, sub, rest)
	case "admin":
		handleAdmin(ctx, sub, rest)
	case "watch":
		handleWatch(*baseURL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		username := fs.String("username", "", "admin username")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *username == "" || *password == "" {
			log.Fatal("username and password are required")
		}

		payload := map[string]string{"username": *username, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Printf("✅ logged in (token expires %s)\n", resp.ExpiresAt)
	case "logout":
		token := mustToken(tokenPath)
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/logout", token, nil, nil); err != nil {
			log.Printf("server logout failed: %v", err)
		}
		if err := clearToken(tokenPath); err != nil {
			log.Fatalf("clear token: %v", err)
		}
		fmt.Println("✅ logged out")
	default:
		log.Fatal("usage: coverhub auth login|logout")
	}
}

func handleCovers(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "list":
		var resp coverListResponse
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/covers", "", nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		for _, c := range resp.Items {
			fmt.Printf("%3d  %s  %s\n", c.Position, c.ID, c.URL)
		}
		fmt.Printf("%d covers\n", resp.Total)
	case "random":
		var resp map[string]string
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/covers/random", "", nil, &resp); err != nil {
			log.Fatalf("random failed: %v", err)
		}
		fmt.Println(resp["background_image"])
	case "add":
		fs := flag.NewFlagSet("covers add", flag.ExitOnError)
		u := fs.String("url", "", "cover image url")
		_ = fs.Parse(args)
		if strings.TrimSpace(*u) == "" {
			log.Fatal("--url is required")
		}

		var created models.Cover
		payload := map[string]string{"url": *u}
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/covers", mustToken(tokenPath), payload, &created); err != nil {
			log.Fatalf("add failed: %v", err)
		}
		printJSON(created)
	case "delete":
		fs := flag.NewFlagSet("covers delete", flag.ExitOnError)
		id := fs.String("id", "", "cover id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("--id is required")
		}

		endpoint := baseURL + "/covers/" + url.PathEscape(*id)
		if err := doJSON(ctx, client, http.MethodDelete, endpoint, mustToken(tokenPath), nil, nil); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Println("✅ deleted")
	default:
		log.Fatal("usage: coverhub covers list|random|add|delete")
	}
}

// handleAdmin talks to the database directly; there is no API to create
// the first admin.
func handleAdmin(ctx context.Context, sub string, args []string) {
	switch sub {
	case "add":
		fs := flag.NewFlagSet("admin add", flag.ExitOnError)
		username := fs.String("username", "", "admin username")
		password := fs.String("password", "", "password (8-72 chars)")
		_ = fs.Parse(args)

		db := database.MustOpen(database.DefaultConfig())
		defer db.Close()
		if err := database.Migrate(db); err != nil {
			log.Fatalf("db migrate failed: %v", err)
		}

		a, err := auth.NewRepo(db).CreateAdmin(ctx, *username, *password)
		if err != nil {
			log.Fatalf("create admin failed: %v", err)
		}
		fmt.Printf("✅ admin %s created (%s)\n", a.Username, a.ID)
	default:
		log.Fatal("usage: coverhub admin add --username NAME --password PASS")
	}
}

func handleWatch(baseURL string) {
	wsURL, err := websocketURL(baseURL, "/ws")
	if err != nil {
		log.Fatalf("websocket url: %v", err)
	}
	for {
		if err := runWebSocket(wsURL); err != nil {
			log.Printf("[watch] disconnected: %v", err)
		}
		time.Sleep(1 * time.Second)
	}
}

func runWebSocket(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[watch] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
	}
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.coverhub-token.json"
	}
	return filepath.Join(home, ".coverhub", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func mustToken(path string) string {
	token, err := readToken(path)
	if err != nil {
		log.Fatalf("token not found, please login: %v", err)
	}
	if token == "" {
		log.Fatal("token empty, please login")
	}
	return token
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("coverhub [-api URL] [-token PATH] <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|logout")
	fmt.Println("  covers list|random|add|delete")
	fmt.Println("  admin add")
	fmt.Println("  watch")
}
