package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
	"github.com/Sakurayo-Crispita/saborreal-storefront/pkg/slug"
)

func (u *UI) cmdAdmin(ctx context.Context, args []string) {
	if !u.session.User().IsAdmin() {
		fmt.Fprintln(u.out, "Admin access required.")
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(u.out, "usage: admin products|product-new|product-edit|product-toggle|product-rm|orders|order|order-status|clients")
		return
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "products":
		u.adminListProducts(ctx)
	case "product-new":
		u.adminCreateProduct(ctx)
	case "product-edit":
		u.adminEditProduct(ctx, rest)
	case "product-toggle":
		u.adminToggleProduct(ctx, rest)
	case "product-rm":
		u.adminDeleteProduct(ctx, rest)
	case "orders":
		u.adminListOrders(ctx)
	case "order":
		u.adminOrderDetail(ctx, rest)
	case "order-status":
		u.adminOrderStatus(ctx, rest)
	case "clients":
		u.adminListClients(ctx)
	default:
		fmt.Fprintf(u.out, "Unknown admin command %q.\n", sub)
	}
}

func (u *UI) adminListProducts(ctx context.Context) {
	products, err := u.backend.AdminListProducts(ctx)
	if err != nil {
		u.fail(err)
		return
	}
	u.products = products
	for i, p := range products {
		state := "activo"
		if !p.Available {
			state = "inactivo"
		}
		fmt.Fprintf(u.out, "%2d. %-30s $%.2f  stock %d  %s  (%s)\n", i+1, p.Name, p.Price, p.Stock, state, p.ID)
	}
}

func (u *UI) adminCreateProduct(ctx context.Context) {
	draft := domain.ProductDraft{
		Name:        u.ask("Nombre: "),
		Description: u.ask("Descripción: "),
		Price:       parsePrice(u.ask("Precio: ")),
		Stock:       cartQty(u.ask("Stock: ")),
		Category:    u.ask("Categoría: "),
		ImageURL:    u.ask("Imagen URL: "),
		Active:      true,
	}
	draft.Slug = slug.Generate(draft.Name)
	u.guard(func() {
		created, err := u.backend.AdminCreateProduct(ctx, draft)
		if err != nil {
			u.fail(err)
			return
		}
		fmt.Fprintf(u.out, "Producto creado: %s (%s)\n", created.Name, created.ID)
	})
}

func (u *UI) adminEditProduct(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(u.out, "usage: admin product-edit <n>")
		return
	}
	p, ok := u.pickProduct(args[0])
	if !ok {
		return
	}
	fmt.Fprintln(u.out, "Press Enter to keep the current value.")
	patch := domain.ProductPatch{
		Name:        patchField(u.askDefault("Nombre: ", p.Name), p.Name),
		Description: patchField(u.askDefault("Descripción: ", p.Description), p.Description),
		Category:    patchField(u.askDefault("Categoría: ", p.Category), p.Category),
		ImageURL:    patchField(u.askDefault("Imagen URL: ", p.ImageURL), p.ImageURL),
	}
	if raw := u.askDefault("Precio: ", fmt.Sprintf("%.2f", p.Price)); raw != "" {
		if price := parsePrice(raw); price > 0 && price != p.Price {
			patch.Price = &price
		}
	}
	if raw := u.askDefault("Stock: ", strconv.Itoa(p.Stock)); raw != "" {
		if stock, err := strconv.Atoi(raw); err == nil && stock >= 0 && stock != p.Stock {
			patch.Stock = &stock
		}
	}
	u.guard(func() {
		updated, err := u.backend.AdminPatchProduct(ctx, p.ID, patch)
		if err != nil {
			u.fail(err)
			return
		}
		fmt.Fprintf(u.out, "Producto actualizado: %s\n", updated.Name)
	})
}

func (u *UI) adminToggleProduct(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(u.out, "usage: admin product-toggle <n>")
		return
	}
	p, ok := u.pickProduct(args[0])
	if !ok {
		return
	}
	active := !p.Available
	u.guard(func() {
		if _, err := u.backend.AdminPatchProduct(ctx, p.ID, domain.ProductPatch{Active: &active}); err != nil {
			u.fail(err)
			return
		}
		fmt.Fprintf(u.out, "%s ahora está %s.\n", p.Name, activeWord(active))
	})
}

func activeWord(active bool) string {
	if active {
		return "activo"
	}
	return "inactivo"
}

func (u *UI) adminDeleteProduct(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(u.out, "usage: admin product-rm <n>")
		return
	}
	p, ok := u.pickProduct(args[0])
	if !ok {
		return
	}
	if u.ask(fmt.Sprintf("Delete %q? (yes/no): ", p.Name)) != "yes" {
		fmt.Fprintln(u.out, "Cancelled.")
		return
	}
	u.guard(func() {
		if err := u.backend.AdminDeleteProduct(ctx, p.ID); err != nil {
			u.fail(err)
			return
		}
		fmt.Fprintf(u.out, "Producto eliminado: %s\n", p.Name)
	})
}

func (u *UI) adminListOrders(ctx context.Context) {
	orders, err := u.backend.AdminListOrders(ctx)
	if err != nil {
		u.fail(err)
		return
	}
	for _, o := range orders {
		fmt.Fprintf(u.out, "%-12s %s  $%.2f  %-10s (%s)\n",
			o.Code, o.CreatedAt.Format("2006-01-02 15:04"), o.Total, o.Status, o.ID)
	}
}

func (u *UI) adminOrderDetail(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(u.out, "usage: admin order <id>")
		return
	}
	detail, err := u.backend.AdminOrderDetail(ctx, args[0])
	if err != nil {
		u.fail(err)
		return
	}
	printOrderDetail(u.out, detail)
}

func (u *UI) adminOrderStatus(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(u.out, "usage: admin order-status <id> CREATED|PAID|DELIVERED|CANCELLED")
		return
	}
	status := domain.OrderStatus(args[1])
	if !domain.ValidOrderStatus(status) {
		fmt.Fprintf(u.out, "Unknown status %q.\n", args[1])
		return
	}
	u.guard(func() {
		if err := u.backend.AdminUpdateOrderStatus(ctx, args[0], status); err != nil {
			u.fail(err)
			return
		}
		fmt.Fprintf(u.out, "Order %s is now %s.\n", args[0], status)
	})
}

func (u *UI) adminListClients(ctx context.Context) {
	clients, err := u.backend.AdminListClients(ctx)
	if err != nil {
		u.fail(err)
		return
	}
	for _, c := range clients {
		fmt.Fprintf(u.out, "%-25s %-30s %s\n", c.Name, c.Email, c.Phone)
	}
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func cartQty(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
