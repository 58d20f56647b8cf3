package domain

// User roles as reported by the backend.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the cached profile record. It is a copy of server truth, refreshed
// after login and on profile mutation; it may be stale between refreshes.
type User struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	Name      string `json:"nombre"`
	Role      string `json:"rol"`
	Phone     string `json:"telefono,omitempty"`
	Address   string `json:"direccion,omitempty"`
	Gender    string `json:"genero,omitempty"`
	BirthDate string `json:"fecha_nacimiento,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// IsAdmin reports whether the user may access the admin surface.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RegisterDraft is the registration request body.
type RegisterDraft struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"nombre" validate:"required,min=2"`
	Phone    string `json:"telefono,omitempty"`
	Address  string `json:"direccion,omitempty"`
}

// ProfilePatch holds a partial profile update; nil fields are omitted.
type ProfilePatch struct {
	Name      *string `json:"nombre,omitempty"`
	Phone     *string `json:"telefono,omitempty"`
	Address   *string `json:"direccion,omitempty"`
	Gender    *string `json:"genero,omitempty"`
	BirthDate *string `json:"fecha_nacimiento,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
