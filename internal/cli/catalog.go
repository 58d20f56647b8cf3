package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
)

func (u *UI) cmdMenu(ctx context.Context, args []string) {
	category := ""
	if len(args) > 0 {
		category = args[0]
	}
	products, err := u.backend.Products(ctx, category)
	if err != nil {
		u.fail(err)
		return
	}
	u.products = products
	if len(products) == 0 {
		fmt.Fprintln(u.out, "No hay productos disponibles.")
		return
	}
	for i, p := range products {
		line := fmt.Sprintf("%2d. %-30s $%.2f", i+1, p.Name, p.Price)
		if p.Category != "" {
			line += "  [" + p.Category + "]"
		}
		if !p.Available {
			line += "  (agotado)"
		}
		fmt.Fprintln(u.out, line)
	}
}

// pickProduct resolves an argument against the last listing. It accepts a
// 1-based listing number only; ids are too unwieldy to type.
func (u *UI) pickProduct(arg string) (domain.Product, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(u.products) {
		fmt.Fprintln(u.out, `Pick a product by its number from the last "menu" listing.`)
		return domain.Product{}, false
	}
	return u.products[n-1], true
}

func (u *UI) cmdComments(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(u.out, "usage: comments <n>")
		return
	}
	p, ok := u.pickProduct(args[0])
	if !ok {
		return
	}
	comments, err := u.backend.Comments(ctx, p.ID)
	if err != nil {
		u.fail(err)
		return
	}
	if len(comments) == 0 {
		fmt.Fprintf(u.out, "No reviews yet for %s.\n", p.Name)
		return
	}
	for _, c := range comments {
		fmt.Fprintf(u.out, "%s %s\n", stars(c.Rating), c.Text)
	}
}

// stars renders a five-star rating line. Ratings outside 0..5 come straight
// from the backend and are clamped rather than trusted.
func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func (u *UI) cmdPostComment(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(u.out, "usage: comment <n> <rating 1-5> <text>")
		return
	}
	p, ok := u.pickProduct(args[0])
	if !ok {
		return
	}
	if !u.session.Authenticated() {
		fmt.Fprintln(u.out, "Log in to post a review.")
		return
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(u.out, "Rating must be a number from 1 to 5.")
		return
	}
	u.guard(func() {
		draft := domain.CommentDraft{
			ProductID: p.ID,
			Text:      strings.Join(args[2:], " "),
			Rating:    rating,
		}
		if _, err := u.backend.CreateComment(ctx, draft); err != nil {
			u.fail(err)
			return
		}
		fmt.Fprintln(u.out, "¡Gracias por tu reseña!")
	})
}
