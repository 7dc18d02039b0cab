// Command userctl creates a user directly against the store, bypassing the
// HTTP layer. Intended for seeding the first account; the password is read
// from the terminal without echo.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/userstorer/internal/flagx"
	"github.com/dmitrijs2005/userstorer/internal/server"
	"github.com/dmitrijs2005/userstorer/internal/server/auth"
	"github.com/dmitrijs2005/userstorer/internal/server/config"
	"github.com/dmitrijs2005/userstorer/internal/server/models"
	"github.com/dmitrijs2005/userstorer/internal/server/repositories/users"
	"github.com/dmitrijs2005/userstorer/internal/server/services"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	// userctl's own flags; config flags are filtered out separately.
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-n", "-o"})

	fs := flag.NewFlagSet("userctl", flag.ExitOnError)
	email := fs.String("e", "", "email (required)")
	username := fs.String("n", "", "username")
	roles := fs.String("o", "", "comma-separated roles")
	if err := fs.Parse(args); err != nil {
		log.Fatal(err)
	}
	if *email == "" {
		log.Fatal("email is required (-e)")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}
	if len(password) == 0 {
		log.Fatal("password must not be empty")
	}

	client, err := server.NewDynamoDBClient(ctx, cfg)
	if err != nil {
		log.Fatalf("dynamodb init error: %v", err)
	}

	repo := users.NewDynamoRepository(client, cfg.UserTableName, cfg.EmailIndexName)
	svc := services.NewUserService(repo, auth.NewPasswordHasher(cfg.BcryptCost))

	user := &models.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: string(password),
		Roles:        splitRoles(*roles),
	}

	created, err := svc.Create(ctx, user)
	if err != nil {
		log.Fatalf("creating user: %v", err)
	}

	fmt.Println(created)
}

func splitRoles(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			roles = append(roles, trimmed)
		}
	}
	return roles
}
