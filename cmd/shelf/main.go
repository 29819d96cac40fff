// Command shelf is the terminal front end for the OpenShelf API. It owns a
// Session object the way a browser shell owns its auth context: bootstrap
// from the persisted token, then run the requested action.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/openshelf/openshelf/internal/client"
	"github.com/openshelf/openshelf/internal/logging"
)

const defaultServerURL = "http://localhost:8080"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("shelf", flag.ContinueOnError)
	serverURL := flags.String("server", envOr("OPENSHELF_URL", defaultServerURL), "API base URL")
	logLevel := flags.String("log-level", "warn", "log level")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() == 0 {
		usage(flags)
		return errors.New("a command is required")
	}
	command := flags.Arg(0)

	cachePath, err := client.DefaultCachePath()
	if err != nil {
		return err
	}

	logger := logging.NewAt(os.Stderr, *logLevel)
	nav := client.NavigatorFuncs{
		Login:     func() { fmt.Println("Not signed in. Run: shelf login -email you@example.com") },
		Dashboard: func() { fmt.Println("Signed in.") },
	}
	sess := client.NewSession(client.New(*serverURL), client.NewFileTokenCache(cachePath), nav, logger)

	ctx := context.Background()

	switch command {
	case "register":
		return registerCmd(ctx, sess, flags.Args()[1:])
	case "login":
		return loginCmd(ctx, sess, flags.Args()[1:])
	case "logout":
		sess.Bootstrap()
		sess.Logout(ctx)
		fmt.Println("Logged out.")
		return nil
	case "profile":
		return profileCmd(ctx, sess)
	case "products":
		return productsCmd(ctx, sess)
	default:
		usage(flags)
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage(flags *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: shelf [flags] <register|login|logout|profile|products> [args]")
	flags.PrintDefaults()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func registerCmd(ctx context.Context, sess *client.Session, args []string) error {
	flags := flag.NewFlagSet("register", flag.ContinueOnError)
	name := flags.String("name", "", "display name")
	email := flags.String("email", "", "email address")
	if err := flags.Parse(args); err != nil {
		return err
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirmation, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}

	if err := sess.Register(ctx, *name, *email, password, confirmation); err != nil {
		var verr *client.ValidationError
		if errors.As(err, &verr) {
			return errors.New(formatFieldErrors(verr.Fields))
		}
		return err
	}
	fmt.Println("Registered. Now run: shelf login -email", *email)
	return nil
}

func loginCmd(ctx context.Context, sess *client.Session, args []string) error {
	flags := flag.NewFlagSet("login", flag.ContinueOnError)
	email := flags.String("email", "", "email address")
	if err := flags.Parse(args); err != nil {
		return err
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	if err := sess.Login(ctx, *email, password); err != nil {
		var verr *client.ValidationError
		if errors.As(err, &verr) {
			return errors.New(formatFieldErrors(verr.Fields))
		}
		return err
	}
	return nil
}

func profileCmd(ctx context.Context, sess *client.Session) error {
	sess.Bootstrap()
	token, ok := sess.Token()
	if !ok {
		return errors.New("not signed in")
	}

	user, err := sess.API().Profile(ctx, token)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\nmember since %s\n", user.Name, user.Email, user.CreatedAt.Format("2006-01-02"))
	return nil
}

func productsCmd(ctx context.Context, sess *client.Session) error {
	sess.Bootstrap()
	token, ok := sess.Token()
	if !ok {
		return errors.New("not signed in")
	}

	products, err := sess.API().Products(ctx, token)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Println("No products yet.")
		return nil
	}
	for _, p := range products {
		fmt.Printf("%s\t%s\t%d\n", p.ID, p.Title, p.Cost)
	}
	return nil
}

func formatFieldErrors(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k + ": " + strings.Join(fields[k], " "))
	}
	return b.String()
}
