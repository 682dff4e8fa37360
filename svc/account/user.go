package account

import "time"

// User is an account as returned to API clients. The password hash never
// leaves the storage layer through this type.
type User struct {
	ID        int64     `json:"id"`
	Nama      string    `json:"nama"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	NoTelepon *string   `json:"no_telepon"`
	Alamat    *string   `json:"alamat"`
	IDDesa    *int64    `json:"id_desa"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoredUser is a User together with its bcrypt password hash.
type StoredUser struct {
	User
	PasswordHash string
}

// Patch is an optional update of a nullable column. Set is false when the
// key was omitted from the request; a nil Value clears the column.
type Patch[T any] struct {
	Set   bool
	Value *T
}

func (p Patch[T]) apply(dst **T) {
	if p.Set {
		*dst = p.Value
	}
}
