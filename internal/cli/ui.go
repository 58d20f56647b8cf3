// Package cli is the storefront's presentational layer: a line-oriented
// terminal UI over the session, cart, and checkout components. It holds no
// state of its own beyond the last listed catalog page.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/api"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/cart"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/checkout"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/session"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/store"
	apperrors "github.com/Sakurayo-Crispita/saborreal-storefront/pkg/errors"
)

// UI drives the interactive storefront.
type UI struct {
	backend  *api.Client
	session  *session.Manager
	cart     *cart.Manager
	checkout *checkout.Service
	st       store.Store
	logger   *slog.Logger

	in  *bufio.Scanner
	out io.Writer

	// busy guards mutating commands against duplicate submission while a
	// remote call is in flight.
	busy bool

	// products holds the last listed catalog so items can be picked by
	// number.
	products []domain.Product
}

// New creates the terminal UI reading stdin and writing stdout.
func New(backend *api.Client, sess *session.Manager, cartManager *cart.Manager, co *checkout.Service, st store.Store, logger *slog.Logger) *UI {
	return &UI{
		backend:  backend,
		session:  sess,
		cart:     cartManager,
		checkout: co,
		st:       st,
		logger:   logger,
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
	}
}

// Run executes the command loop until EOF, "quit", or context cancellation.
func (u *UI) Run(ctx context.Context) error {
	fmt.Fprintln(u.out, "Sabor Real — panadería artesanal")
	fmt.Fprintln(u.out, `Type "help" for commands.`)

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(u.out, u.prompt())
		line, ok := u.readLine()
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		u.dispatch(ctx, cmd, args)
	}
}

func (u *UI) dispatch(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "help":
		u.printHelp()
	case "menu":
		u.cmdMenu(ctx, args)
	case "comments":
		u.cmdComments(ctx, args)
	case "comment":
		u.cmdPostComment(ctx, args)
	case "add":
		u.cmdAdd(ctx, args)
	case "cart":
		u.cmdShowCart()
	case "qty":
		u.cmdSetQuantity(ctx, args)
	case "inc":
		u.cmdBump(ctx, args, u.cart.Increment)
	case "dec":
		u.cmdBump(ctx, args, u.cart.Decrement)
	case "remove":
		u.cmdRemove(ctx, args)
	case "clear":
		u.cart.Clear(ctx)
		fmt.Fprintln(u.out, "Cart cleared.")
	case "checkout":
		u.cmdCheckout(ctx)
	case "orders":
		u.cmdOrders(ctx)
	case "order":
		u.cmdOrderDetail(ctx, args)
	case "login":
		u.cmdLogin(ctx)
	case "register":
		u.cmdRegister(ctx)
	case "logout":
		u.session.Logout(ctx)
		fmt.Fprintln(u.out, "Logged out.")
	case "profile":
		u.cmdProfile()
	case "edit-profile":
		u.cmdEditProfile(ctx)
	case "passwd":
		u.cmdChangePassword(ctx)
	case "theme":
		u.cmdTheme(ctx, args)
	case "admin":
		u.cmdAdmin(ctx, args)
	default:
		fmt.Fprintf(u.out, "Unknown command %q, try \"help\".\n", cmd)
	}
}

func (u *UI) printHelp() {
	fmt.Fprint(u.out, `catalog:
  menu [category]          list products
  comments <n>             reviews for product n of the last listing
  comment <n> <1-5> <txt>  post a review (login required)
cart:
  add <n> [qty]            add product n of the last listing
  cart                     show the cart
  qty <n> <count>          set quantity for cart line n
  inc <n> / dec <n>        bump quantity for cart line n
  remove <n>               drop cart line n
  clear                    empty the cart
  checkout                 confirm the order (login required)
orders:
  orders                   list my orders
  order <id>               order detail
account:
  login / register / logout
  profile / edit-profile / passwd
  theme [preset]           show or set the display preset
admin:
  admin products|orders|clients ...
`)
}

// prompt renders the status line: identity and cart size, once the initial
// restore completed.
func (u *UI) prompt() string {
	if !u.session.Ready() {
		return "... > "
	}
	who := "guest"
	if user := u.session.User(); user != nil {
		who = user.Name
	} else if u.session.Authenticated() {
		who = "(profile pending)"
	}
	if n := u.cart.Len(); n > 0 {
		return fmt.Sprintf("%s [cart %d] > ", who, n)
	}
	return who + " > "
}

func (u *UI) readLine() (string, bool) {
	if !u.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(u.in.Text()), true
}

// ask prompts for one input line.
func (u *UI) ask(label string) string {
	fmt.Fprint(u.out, label)
	line, _ := u.readLine()
	return line
}

// guard marks the UI busy for the duration of a mutating remote call and
// rejects re-entry, the terminal equivalent of disabling the submit button.
// The command loop is currently synchronous, so the rejection branch only
// becomes reachable once commands run off the loop goroutine.
func (u *UI) guard(fn func()) {
	if u.busy {
		fmt.Fprintln(u.out, "Still working on the previous action...")
		return
	}
	u.busy = true
	defer func() { u.busy = false }()
	fn()
}

// fail renders an error near the triggering command, translating the known
// backend phrases into friendlier wording.
func (u *UI) fail(err error) {
	fmt.Fprintf(u.out, "Error: %s\n", userMessage(err))
}

// userMessage maps an error to the message shown to the shopper.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if strings.Contains(msg, "Credenciales inválidas") {
			return "wrong email or password"
		}
		if errors.Is(err, apperrors.ErrConflict) && strings.Contains(strings.ToLower(msg), "email") {
			return "that email is already registered"
		}
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return "your session expired, please log in again"
		}
		return msg
	}
	return err.Error()
}
