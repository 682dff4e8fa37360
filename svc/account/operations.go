package account

import (
	"github.com/simonta/simonta-api/pkg/lookups"
	"github.com/simonta/simonta-api/pkg/rbac"
	"github.com/simonta/simonta-api/pkg/request"
	"github.com/simonta/simonta-api/pkg/validator"
)

// Lookup entities referenced by the account rules.
const (
	EntityUsers = "users"
	EntityDesa  = "desa"
)

// LookupSchema describes the tables the account rules query.
func LookupSchema() lookups.Schema {
	return lookups.Schema{
		EntityUsers: {Name: "users", Key: "id", Columns: []string{"username", "email"}},
		EntityDesa:  {Name: "desa", Key: "id"},
	}
}

// phonePattern allows digits, dashes, plus signs and whitespace. It also
// matches the empty string.
const phonePattern = `[0-9\-\+\s]*`

var labels = validator.Labels{
	"nama":                  "Nama",
	"username":              "Username",
	"email":                 "Email",
	"password":              "Password",
	"password_confirmation": "Konfirmasi Password",
	"role":                  "Role",
	"no_telepon":            "Nomor Telepon",
	"alamat":                "Alamat",
	"id_desa":               "Desa",
}

var messages = validator.Messages{
	"nama.required":      "Nama wajib diisi",
	"nama.max":           "Nama maksimal 255 karakter",
	"username.required":  "Username wajib diisi",
	"username.max":       "Username maksimal 255 karakter",
	"username.unique":    "Username sudah digunakan",
	"email.required":     "Email wajib diisi",
	"email.email":        "Format email tidak valid",
	"email.max":          "Email maksimal 255 karakter",
	"email.unique":       "Email sudah digunakan",
	"password.required":  "Password wajib diisi",
	"password.min":       "Password minimal 6 karakter",
	"password.confirmed": "Konfirmasi password tidak cocok",
	"role.required":      "Role wajib diisi",
	"role.in":            "Role tidak valid",
	"no_telepon.max":     "Nomor telepon maksimal 20 karakter",
	"no_telepon.regex":   "Format nomor telepon tidak valid",
	"alamat.max":         "Alamat maksimal 500 karakter",
	"id_desa.exists":     "Desa tidak ditemukan",
}

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Nama      string
	Username  string
	Email     string
	Password  string
	Role      string
	NoTelepon *string
	Alamat    *string
	IDDesa    *int64
}

// UpdateInput is a validated profile update. Password is nil when the
// request did not include one.
type UpdateInput struct {
	Nama      string
	Email     string
	Password  *string
	NoTelepon Patch[string]
	Alamat    Patch[string]
	IDDesa    Patch[int64]
}

// LoginInput carries login credentials.
type LoginInput struct {
	Username string
	Password string
}

// contactFields are shared by registration and update.
func contactFields(b *validator.Builder) *validator.Builder {
	return b.
		Field("no_telepon", validator.Optional(), validator.StringType(), validator.MaxLength(20), validator.Pattern(phonePattern)).
		Field("alamat", validator.Optional(), validator.StringType(), validator.MaxLength(500)).
		Field("id_desa", validator.Optional(), validator.ExistsExternal(EntityDesa, "id"))
}

var registerRules = contactFields(validator.NewRuleSet().
	Field("nama", validator.Required(), validator.StringType(), validator.MaxLength(255)).
	Field("username", validator.Required(), validator.StringType(), validator.MaxLength(255), validator.UniqueExternal(EntityUsers, "username")).
	Field("email", validator.Required(), validator.Email(), validator.MaxLength(255), validator.UniqueExternal(EntityUsers, "email")).
	Field("password", validator.Required(), validator.StringType(), validator.MinLength(6), validator.Confirmed()).
	Field("role", validator.Required(), validator.In(Roles()...)),
).MustBuild()

// RegisterOperation creates an account. Anyone may call it.
func RegisterOperation() request.Operation[RegisterInput] {
	return request.Operation[RegisterInput]{
		Name:     "register",
		Policy:   rbac.Anonymous(),
		Rules:    request.StaticRules(registerRules),
		Labels:   labels,
		Messages: messages,
		Decode: func(rec validator.Record) (RegisterInput, error) {
			return RegisterInput{
				Nama:      rec.String("nama"),
				Username:  rec.String("username"),
				Email:     rec.String("email"),
				Password:  rec.String("password"),
				Role:      rec.String("role"),
				NoTelepon: rec.StringPtr("no_telepon"),
				Alamat:    rec.StringPtr("alamat"),
				IDDesa:    rec.Int64Ptr("id_desa"),
			}, nil
		},
	}
}

// UpdateUserOperation updates the account targetID. Password rules apply
// only when the request carries a password key, and the email uniqueness
// check ignores the target's own row.
func UpdateUserOperation(targetID int64, policy rbac.Policy) request.Operation[UpdateInput] {
	return request.Operation[UpdateInput]{
		Name:   "updateUser",
		Policy: policy,
		Rules: func(in validator.Input) (validator.RuleSet, error) {
			b := validator.NewRuleSet().
				Field("nama", validator.Required(), validator.StringType(), validator.MaxLength(255)).
				Field("email", validator.Required(), validator.Email(), validator.MaxLength(255), validator.UniqueExternalExcept(EntityUsers, "email", targetID)).
				FieldIf(in.Has("password"), "password", validator.Required(), validator.StringType(), validator.MinLength(6))
			return contactFields(b).Build()
		},
		Labels:   labels,
		Messages: messages,
		Decode: func(rec validator.Record) (UpdateInput, error) {
			return UpdateInput{
				Nama:      rec.String("nama"),
				Email:     rec.String("email"),
				Password:  rec.StringPtr("password"),
				NoTelepon: Patch[string]{Set: rec.Has("no_telepon"), Value: rec.StringPtr("no_telepon")},
				Alamat:    Patch[string]{Set: rec.Has("alamat"), Value: rec.StringPtr("alamat")},
				IDDesa:    Patch[int64]{Set: rec.Has("id_desa"), Value: rec.Int64Ptr("id_desa")},
			}, nil
		},
	}
}

var loginRules = validator.NewRuleSet().
	Field("username", validator.Required(), validator.StringType()).
	Field("password", validator.Required(), validator.StringType()).
	MustBuild()

// LoginOperation checks the shape of a login request. Credentials are
// verified by Service.Login afterwards.
func LoginOperation() request.Operation[LoginInput] {
	return request.Operation[LoginInput]{
		Name:     "login",
		Rules:    request.StaticRules(loginRules),
		Labels:   labels,
		Messages: messages,
		Decode: func(rec validator.Record) (LoginInput, error) {
			return LoginInput{Username: rec.String("username"), Password: rec.String("password")}, nil
		},
	}
}
