// Package cli is the terminal front end. The session is explicit: loaded
// once when the app is constructed, carried as a field, removed on logout.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/pkg/client"

	"golang.org/x/term"
)

// App wires the typed API client with the persisted session.
type App struct {
	client      *client.Client
	session     *Session
	sessionPath string
	out         io.Writer
}

// NewApp creates the CLI app, loading any persisted session from disk.
func NewApp(serverURL string) (*App, error) {
	path, err := DefaultSessionPath()
	if err != nil {
		return nil, err
	}
	session, err := LoadSession(path)
	if err != nil {
		return nil, err
	}

	c := client.New(serverURL)
	if session != nil {
		c.SetToken(session.Token)
	}

	return &App{
		client:      c,
		session:     session,
		sessionPath: path,
		out:         os.Stdout,
	}, nil
}

// Run dispatches a subcommand.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	switch args[0] {
	case "register":
		return a.register(ctx, args[1:])
	case "login":
		return a.login(ctx, args[1:])
	case "logout":
		return a.logout()
	case "me":
		return a.me(ctx)
	case "search":
		return a.search(ctx, args[1:])
	case "list":
		return a.list(ctx, args[1:])
	case "save":
		return a.save(ctx, args[1:])
	case "update":
		return a.update(ctx, args[1:])
	case "delete":
		return a.delete(ctx, args[1:])
	case "help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `BookShelf commands:
  register -username <name> -email <email>   create an account
  login -email <email>                       log in
  logout                                     remove the local session
  me                                         show the logged-in user
  search [flags] <terms...>                  search the catalog
      -page N  -free  -print-type all|books|magazines
  list [-status <status>]                    show your library
  save -id <googleId> -title <title> [...]   save a book
  update -id <bookId> [-status s] [-review r]
  delete -id <bookId>                        remove a book`)
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	resp, err := a.client.Register(ctx, *username, *email, password)
	if err != nil {
		return err
	}
	return a.storeSession(resp)
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	resp, err := a.client.Login(ctx, *email, password)
	if err != nil {
		return err
	}
	return a.storeSession(resp)
}

func (a *App) storeSession(resp *models.AuthResponse) error {
	a.session = &Session{
		Token:    resp.Token,
		UserID:   resp.ID,
		Username: resp.Username,
		Email:    resp.Email,
	}
	a.client.SetToken(resp.Token)
	if err := a.session.Save(a.sessionPath); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s <%s>\n", resp.Username, resp.Email)
	return nil
}

func (a *App) logout() error {
	if err := ClearSession(a.sessionPath); err != nil {
		return err
	}
	a.session = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) me(ctx context.Context) error {
	me, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", me.Username, me.Email, me.ID)
	return nil
}

func (a *App) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	page := fs.Int("page", 1, "result page, starting at 1")
	free := fs.Bool("free", false, "free ebooks only")
	printType := fs.String("print-type", "", "all, books or magazines")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query := strings.Join(fs.Args(), " ")
	filter := ""
	if *free {
		filter = "free-ebooks"
	}

	resp, err := a.client.Search(ctx, query, *page, filter, *printType)
	if err != nil {
		return err
	}

	totalPages := (resp.TotalItems + resp.BooksPerPage - 1) / resp.BooksPerPage
	fmt.Fprintf(a.out, "Page %d of %d (%d items)\n", resp.CurrentPage, totalPages, resp.TotalItems)
	for _, b := range resp.Data {
		fmt.Fprintf(a.out, "  %-14s %s — %s\n", b.GoogleID, b.Title, strings.Join(b.Authors, ", "))
	}
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	status := fs.String("status", "", "filter by reading status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *status != "" && !models.ValidStatus(*status) {
		return fmt.Errorf("invalid status %q", *status)
	}

	resp, err := a.client.ListBooks(ctx)
	if err != nil {
		return err
	}

	shown := 0
	for _, b := range resp.Data {
		if *status != "" && b.Status != *status {
			continue
		}
		shown++
		fmt.Fprintf(a.out, "  %s  [%s] %s — %s\n", b.ID, b.Status, b.Title, strings.Join(b.Authors, ", "))
		if b.PersonalReview != "" {
			fmt.Fprintf(a.out, "      review: %s\n", b.PersonalReview)
		}
	}
	fmt.Fprintf(a.out, "%d of %d books\n", shown, resp.Count)
	return nil
}

func (a *App) save(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	id := fs.String("id", "", "catalog id of the book")
	title := fs.String("title", "", "book title")
	subtitle := fs.String("subtitle", "", "book subtitle")
	authors := fs.String("authors", "", "comma-separated author list")
	description := fs.String("description", "", "book description")
	thumbnail := fs.String("thumbnail", "", "thumbnail URL")
	link := fs.String("link", "", "detail link")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := &models.CreateBookRequest{
		GoogleID:    *id,
		Title:       *title,
		Subtitle:    *subtitle,
		Description: *description,
		Thumbnail:   *thumbnail,
		Link:        *link,
	}
	if *authors != "" {
		for _, author := range strings.Split(*authors, ",") {
			req.Authors = append(req.Authors, strings.TrimSpace(author))
		}
	}

	book, err := a.client.SaveBook(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %q (%s)\n", book.Title, book.ID)
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	id := fs.String("id", "", "saved book id")
	status := fs.String("status", "", "new reading status")
	review := fs.String("review", "", "personal review")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := &models.UpdateBookRequest{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "status":
			req.Status = status
		case "review":
			req.PersonalReview = review
		}
	})

	book, err := a.client.UpdateBook(ctx, *id, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %q: status %s\n", book.Title, book.Status)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.String("id", "", "saved book id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	book, err := a.client.DeleteBook(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed %q from your library\n", book.Title)
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
