package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
)

func (u *UI) cmdOrders(ctx context.Context) {
	if !u.session.Authenticated() {
		fmt.Fprintln(u.out, "Log in to see your orders.")
		return
	}
	orders, err := u.backend.Orders(ctx)
	if err != nil {
		u.fail(err)
		return
	}
	if len(orders) == 0 {
		fmt.Fprintln(u.out, "No orders yet.")
		return
	}
	for _, o := range orders {
		fmt.Fprintf(u.out, "%-12s %s  $%.2f  %s\n",
			o.Code, o.CreatedAt.Format("2006-01-02 15:04"), o.Total, o.Status)
	}
}

func (u *UI) cmdOrderDetail(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(u.out, "usage: order <id>")
		return
	}
	detail, err := u.backend.Order(ctx, args[0])
	if err != nil {
		u.fail(err)
		return
	}
	printOrderDetail(u.out, detail)
}

func printOrderSummary(w io.Writer, o *domain.OrderSummary) {
	fmt.Fprintf(w, "¡Pedido confirmado! Código %s, total $%.2f (%s)\n", o.Code, o.Total, o.Status)
}

func printOrderDetail(w io.Writer, o *domain.OrderDetail) {
	fmt.Fprintf(w, "Pedido %s (%s), %s\n", o.Code, o.Status, o.CreatedAt.Format("2006-01-02 15:04"))
	for _, it := range o.Items {
		fmt.Fprintf(w, "  %-30s %d × $%.2f = $%.2f\n", it.Name, it.Qty, it.UnitPrice, it.Subtotal)
	}
	fmt.Fprintf(w, "  Total: $%.2f\n", o.Total)
	fmt.Fprintf(w, "  Entrega: %s, %s (%s)\n", o.Delivery.Name, o.Delivery.Address, o.Delivery.Phone)
	if o.Delivery.Notes != "" {
		fmt.Fprintf(w, "  Notas: %s\n", o.Delivery.Notes)
	}
}
