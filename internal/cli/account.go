package cli

import (
	"context"
	"fmt"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/store"
)

// themePresets are the recognized display presets. "default" clears the
// stored preference.
var themePresets = []string{"default", "high-contrast", "large-text", "dark"}

func (u *UI) cmdLogin(ctx context.Context) {
	email := u.ask("Email: ")
	password := u.ask("Contraseña: ")
	u.guard(func() {
		if err := u.session.Login(ctx, email, password); err != nil {
			u.fail(err)
			return
		}
		fmt.Fprintf(u.out, "¡Bienvenido, %s!\n", greeting(u.session.User(), email))
	})
}

func (u *UI) cmdRegister(ctx context.Context) {
	draft := domain.RegisterDraft{
		Name:     u.ask("Nombre: "),
		Email:    u.ask("Email: "),
		Password: u.ask("Contraseña: "),
		Phone:    u.ask("Teléfono (opcional): "),
		Address:  u.ask("Dirección (opcional): "),
	}
	u.guard(func() {
		if err := u.session.Register(ctx, draft); err != nil {
			u.fail(err)
			return
		}
		fmt.Fprintln(u.out, "Cuenta creada. ¡Bienvenido!")
	})
}

func (u *UI) cmdProfile() {
	user := u.session.User()
	if user == nil {
		fmt.Fprintln(u.out, "Not logged in.")
		return
	}
	fmt.Fprintf(u.out, "Nombre:    %s\n", user.Name)
	fmt.Fprintf(u.out, "Email:     %s\n", user.Email)
	fmt.Fprintf(u.out, "Rol:       %s\n", user.Role)
	if user.Phone != "" {
		fmt.Fprintf(u.out, "Teléfono:  %s\n", user.Phone)
	}
	if user.Address != "" {
		fmt.Fprintf(u.out, "Dirección: %s\n", user.Address)
	}
	if user.BirthDate != "" {
		fmt.Fprintf(u.out, "Nacimiento: %s\n", user.BirthDate)
	}
}

func (u *UI) cmdEditProfile(ctx context.Context) {
	user := u.session.User()
	if user == nil {
		fmt.Fprintln(u.out, "Log in first.")
		return
	}
	fmt.Fprintln(u.out, "Press Enter to keep the current value.")
	patch := domain.ProfilePatch{
		Name:      patchField(u.askDefault("Nombre: ", user.Name), user.Name),
		Phone:     patchField(u.askDefault("Teléfono: ", user.Phone), user.Phone),
		Address:   patchField(u.askDefault("Dirección: ", user.Address), user.Address),
		BirthDate: patchField(u.askDefault("Nacimiento (YYYY-MM-DD): ", user.BirthDate), user.BirthDate),
	}
	u.guard(func() {
		updated, err := u.session.UpdateProfile(ctx, patch)
		if err != nil {
			u.fail(err)
			return
		}
		fmt.Fprintf(u.out, "Perfil actualizado, %s.\n", updated.Name)
	})
}

// patchField returns a pointer only when the value changed, keeping the
// request body to the touched fields.
// greeting names the freshly logged-in user. The profile fetch after login
// may fail on a flaky backend, leaving the session with a token but no
// cached user; fall back to the email the user just typed.
func greeting(user *domain.User, email string) string {
	if user != nil && user.Name != "" {
		return user.Name
	}
	return email
}

func patchField(value, current string) *string {
	if value == current {
		return nil
	}
	return &value
}

func (u *UI) cmdChangePassword(ctx context.Context) {
	if !u.session.Authenticated() {
		fmt.Fprintln(u.out, "Log in first.")
		return
	}
	current := u.ask("Contraseña actual: ")
	next := u.ask("Nueva contraseña: ")
	if len(next) < 8 {
		fmt.Fprintln(u.out, "La nueva contraseña debe tener al menos 8 caracteres.")
		return
	}
	u.guard(func() {
		if err := u.session.ChangePassword(ctx, current, next); err != nil {
			u.fail(err)
			return
		}
		fmt.Fprintln(u.out, "Contraseña actualizada.")
	})
}

func (u *UI) cmdTheme(ctx context.Context, args []string) {
	if len(args) == 0 {
		current := "default"
		var s string
		if err := u.st.Get(ctx, store.KeyTheme, &s); err == nil && s != "" {
			current = s
		}
		fmt.Fprintf(u.out, "Current preset: %s (options: %v)\n", current, themePresets)
		return
	}

	preset := args[0]
	known := false
	for _, p := range themePresets {
		if p == preset {
			known = true
			break
		}
	}
	if !known {
		fmt.Fprintf(u.out, "Unknown preset %q, options: %v\n", preset, themePresets)
		return
	}
	if preset == "default" {
		if err := u.st.Delete(ctx, store.KeyTheme); err != nil {
			u.fail(err)
			return
		}
	} else if err := u.st.Set(ctx, store.KeyTheme, preset); err != nil {
		u.fail(err)
		return
	}
	fmt.Fprintf(u.out, "Preset set to %s.\n", preset)
}
