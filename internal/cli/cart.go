package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/cart"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/checkout"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
)

func (u *UI) cmdAdd(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(u.out, "usage: add <n> [qty]")
		return
	}
	p, ok := u.pickProduct(args[0])
	if !ok {
		return
	}
	if !p.Available {
		fmt.Fprintf(u.out, "%s no está disponible.\n", p.Name)
		return
	}
	qty := 1
	if len(args) > 1 {
		qty = cart.CoerceQuantity(args[1])
	}
	u.cart.AddItem(ctx, p, qty)
	fmt.Fprintf(u.out, "Added %d × %s. Cart total: $%.2f\n", qty, p.Name, u.cart.Total())
}

func (u *UI) cmdShowCart() {
	items := u.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(u.out, "Your cart is empty.")
		return
	}
	for i, line := range items {
		fmt.Fprintf(u.out, "%2d. %-30s %d × $%.2f = $%.2f\n",
			i+1, line.Name, line.Quantity, line.UnitPrice, line.Subtotal())
	}
	fmt.Fprintf(u.out, "Total: $%.2f\n", u.cart.Total())
}

// pickLine resolves a 1-based cart line number to its product id.
func (u *UI) pickLine(arg string) (string, bool) {
	items := u.cart.Items()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(items) {
		fmt.Fprintln(u.out, `Pick a line by its number from "cart".`)
		return "", false
	}
	return items[n-1].ProductID, true
}

func (u *UI) cmdSetQuantity(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(u.out, "usage: qty <n> <count>")
		return
	}
	id, ok := u.pickLine(args[0])
	if !ok {
		return
	}
	if err := u.cart.SetQuantity(ctx, id, cart.CoerceQuantity(args[1])); err != nil {
		u.fail(err)
		return
	}
	u.cmdShowCart()
}

func (u *UI) cmdBump(ctx context.Context, args []string, op func(context.Context, string) error) {
	if len(args) < 1 {
		fmt.Fprintln(u.out, "usage: inc|dec <n>")
		return
	}
	id, ok := u.pickLine(args[0])
	if !ok {
		return
	}
	if err := op(ctx, id); err != nil {
		u.fail(err)
		return
	}
	u.cmdShowCart()
}

func (u *UI) cmdRemove(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(u.out, "usage: remove <n>")
		return
	}
	id, ok := u.pickLine(args[0])
	if !ok {
		return
	}
	if err := u.cart.RemoveItem(ctx, id); err != nil {
		u.fail(err)
		return
	}
	u.cmdShowCart()
}

func (u *UI) cmdCheckout(ctx context.Context) {
	if u.cart.Len() == 0 {
		fmt.Fprintln(u.out, "Your cart is empty.")
		return
	}
	if !u.session.Authenticated() {
		fmt.Fprintln(u.out, "Log in to place an order.")
		return
	}

	fmt.Fprintf(u.out, "Order total: $%.2f\n", u.cart.Total())
	form := u.askDeliveryForm()

	u.guard(func() {
		summary, err := u.checkout.Submit(ctx, form)
		if err != nil {
			u.fail(err)
			return
		}
		printOrderSummary(u.out, summary)
	})
}

// askDeliveryForm prefills from the profile so a returning customer only
// confirms.
func (u *UI) askDeliveryForm() (form checkout.DeliveryForm) {
	user := u.session.User()
	form.Name = u.askDefault("Nombre: ", userField(user, func(usr *domain.User) string { return usr.Name }))
	form.Phone = u.askDefault("Teléfono: ", userField(user, func(usr *domain.User) string { return usr.Phone }))
	form.Address = u.askDefault("Dirección: ", userField(user, func(usr *domain.User) string { return usr.Address }))
	form.Notes = u.ask("Notas (opcional): ")
	return form
}

func (u *UI) askDefault(label, fallback string) string {
	if fallback != "" {
		label = fmt.Sprintf("%s[%s] ", label, fallback)
	}
	if v := u.ask(label); v != "" {
		return v
	}
	return fallback
}

func userField(user *domain.User, get func(*domain.User) string) string {
	if user == nil {
		return ""
	}
	return get(user)
}
