package account_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/simonta/simonta-api/pkg/lookups"
	"github.com/simonta/simonta-api/pkg/rbac"
	"github.com/simonta/simonta-api/pkg/request"
	"github.com/simonta/simonta-api/pkg/validator"
	"github.com/simonta/simonta-api/svc/account"
)

type fixture struct {
	svc   *account.Service
	store *account.MemoryStorage
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	mirror := lookups.NewMemory()
	store := account.NewMemoryStorage(mirror)
	store.AddDesa(1, "Sukamaju")

	svc := account.NewService(request.NewPipeline(mirror), store, account.WithBcryptCost(bcrypt.MinCost))
	return fixture{svc: svc, store: store}
}

func registerInput(overrides map[string]any) validator.Input {
	in := validator.Input{
		"nama":                  "Bob",
		"username":              "bob",
		"email":                 "bob@x.com",
		"password":              "secret",
		"password_confirmation": "secret",
		"role":                  account.RoleWarga,
	}
	for k, v := range overrides {
		if v == nil {
			delete(in, k)
			continue
		}
		in[k] = v
	}
	return in
}

func register(t *testing.T, f fixture, overrides map[string]any) account.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), nil, registerInput(overrides))
	require.NoError(t, err)
	return u
}

func validationErrors(t *testing.T, err error) validator.ValidationErrors {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs
}

func TestRegister_MissingNama(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), nil, registerInput(map[string]any{"nama": ""}))

	verrs := validationErrors(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "nama", verrs[0].Field)
	assert.Equal(t, validator.KindRequired, verrs[0].Rule)
	assert.Equal(t, "Nama wajib diisi", verrs[0].Message)
}

func TestRegister_UsernameTaken(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	register(t, f, nil)

	_, err := f.svc.Register(context.Background(), nil, registerInput(map[string]any{"email": "other@x.com"}))

	verrs := validationErrors(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "username", verrs[0].Field)
	assert.Equal(t, validator.KindUnique, verrs[0].Rule)
	assert.Equal(t, "Username sudah digunakan", verrs[0].Message)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	u := register(t, f, map[string]any{
		"no_telepon": "+62 812-3456",
		"alamat":     "",
		"id_desa":    int64(1),
	})

	assert.Positive(t, u.ID)
	assert.Equal(t, "bob", u.Username)
	assert.Equal(t, account.RoleWarga, u.Role)
	require.NotNil(t, u.NoTelepon)
	assert.Equal(t, "+62 812-3456", *u.NoTelepon)
	assert.Nil(t, u.Alamat, "empty optional value is stored as null")
	require.NotNil(t, u.IDDesa)
	assert.Equal(t, int64(1), *u.IDDesa)

	stored, err := f.store.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func TestRegister_FieldRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides map[string]any
		field     string
		message   string
	}{
		{"invalid email", map[string]any{"email": "not-an-email"}, "email", "Format email tidak valid"},
		{"short password", map[string]any{"password": "abc", "password_confirmation": "abc"}, "password", "Password minimal 6 karakter"},
		{"confirmation mismatch", map[string]any{"password_confirmation": "secreT"}, "password", "Konfirmasi password tidak cocok"},
		{"confirmation missing", map[string]any{"password_confirmation": nil}, "password", "Konfirmasi password tidak cocok"},
		{"unknown role", map[string]any{"role": "Superuser"}, "role", "Role tidak valid"},
		{"phone format", map[string]any{"no_telepon": "call me"}, "no_telepon", "Format nomor telepon tidak valid"},
		{"unknown desa", map[string]any{"id_desa": int64(99)}, "id_desa", "Desa tidak ditemukan"},
		{"nama too long", map[string]any{"nama": strings.Repeat("a", 256)}, "nama", "Nama maksimal 255 karakter"},
		{"missing username", map[string]any{"username": nil}, "username", "Username wajib diisi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)

			_, err := f.svc.Register(context.Background(), nil, registerInput(tt.overrides))

			verrs := validationErrors(t, err)
			require.Len(t, verrs, 1, verrs.Error())
			assert.Equal(t, tt.field, verrs[0].Field)
			assert.Equal(t, tt.message, verrs[0].Message)
		})
	}
}

func TestRegister_ErrorsAccumulateAcrossFields(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), nil, validator.Input{})

	verrs := validationErrors(t, err)
	assert.Equal(t, []string{"nama", "username", "email", "password", "role"}, verrs.Fields())
}

type unavailableLookups struct{}

func (unavailableLookups) Exists(context.Context, string, string, any) (bool, error) {
	return false, errors.New("connection refused")
}

func (unavailableLookups) ExistsExcluding(context.Context, string, string, any, int64) (bool, error) {
	return false, errors.New("connection refused")
}

func TestRegister_LookupUnavailable(t *testing.T) {
	t.Parallel()

	store := account.NewMemoryStorage(nil)
	svc := account.NewService(request.NewPipeline(unavailableLookups{}), store, account.WithBcryptCost(bcrypt.MinCost))

	_, err := svc.Register(context.Background(), nil, registerInput(nil))
	require.ErrorIs(t, err, validator.ErrLookupUnavailable)

	var verrs validator.ValidationErrors
	assert.False(t, errors.As(err, &verrs), "infrastructure failure is not a validation error")
}

func TestRegister_ConstraintBackstop(t *testing.T) {
	t.Parallel()

	// Lookups that never see the stored rows simulate two concurrent
	// registrations that both passed the uniqueness check.
	store := account.NewMemoryStorage(nil)
	svc := account.NewService(request.NewPipeline(lookups.NewMemory()), store, account.WithBcryptCost(bcrypt.MinCost))

	_, err := svc.Register(context.Background(), nil, registerInput(nil))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), nil, registerInput(map[string]any{"email": "other@x.com"}))
	verrs := validationErrors(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "username", verrs[0].Field)
	assert.Equal(t, validator.KindUnique, verrs[0].Rule)
	assert.Equal(t, "Username sudah digunakan", verrs[0].Message)

	_, err = svc.Register(context.Background(), nil, registerInput(map[string]any{"username": "bobby"}))
	verrs = validationErrors(t, err)
	assert.Equal(t, "Email sudah digunakan", verrs.Message("email"))
}

func TestUpdateUser_KeepsOwnEmail(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	u := register(t, f, nil)

	actor := &rbac.Actor{ID: u.ID, Role: account.RoleWarga}
	updated, err := f.svc.UpdateUser(context.Background(), actor, u.ID, validator.Input{
		"nama":  "Bob Baru",
		"email": "bob@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bob Baru", updated.Nama)
	assert.Equal(t, "bob@x.com", updated.Email)
}

func TestUpdateUser_EmailTakenByAnother(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	register(t, f, map[string]any{"username": "alice", "email": "alice@x.com"})
	u := register(t, f, nil)

	actor := &rbac.Actor{ID: u.ID, Role: account.RoleWarga}
	_, err := f.svc.UpdateUser(context.Background(), actor, u.ID, validator.Input{
		"nama":  "Bob",
		"email": "alice@x.com",
	})

	verrs := validationErrors(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "email", verrs[0].Field)
	assert.Equal(t, "Email sudah digunakan", verrs[0].Message)
}

func TestUpdateUser_Authorization(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	alice := register(t, f, map[string]any{"username": "alice", "email": "alice@x.com"})
	bob := register(t, f, nil)

	in := validator.Input{"nama": "", "email": "bad"}

	_, err := f.svc.UpdateUser(context.Background(), &rbac.Actor{ID: alice.ID, Role: account.RoleWarga}, bob.ID, in)
	assert.ErrorIs(t, err, request.ErrAuthorizationDenied, "denial is reported before any field error")

	_, err = f.svc.UpdateUser(context.Background(), nil, bob.ID, in)
	assert.ErrorIs(t, err, request.ErrAuthorizationDenied)

	_, err = f.svc.UpdateUser(context.Background(), &rbac.Actor{ID: alice.ID, Role: account.RoleAdmin}, bob.ID, validator.Input{
		"nama":  "Bob Admin Edit",
		"email": "bob@x.com",
	})
	assert.NoError(t, err)
}

func TestUpdateUser_NotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.UpdateUser(context.Background(), &rbac.Actor{ID: 1, Role: account.RoleAdmin}, 42, validator.Input{})
	assert.ErrorIs(t, err, account.ErrUserNotFound)
}

func TestUpdateUser_DeniedBeforeLookup(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	u := register(t, f, nil)
	warga := &rbac.Actor{ID: u.ID, Role: account.RoleWarga}

	_, err := f.svc.UpdateUser(context.Background(), warga, u.ID+1, validator.Input{})
	assert.ErrorIs(t, err, request.ErrAuthorizationDenied)
	assert.NotErrorIs(t, err, account.ErrUserNotFound)

	_, err = f.svc.UpdateUser(context.Background(), nil, 999, validator.Input{})
	assert.ErrorIs(t, err, request.ErrAuthorizationDenied)

	register(t, f, map[string]any{"username": "alice", "email": "alice@x.com"})
	_, err = f.svc.UpdateUser(context.Background(), warga, u.ID+1, validator.Input{})
	assert.ErrorIs(t, err, request.ErrAuthorizationDenied, "existing and missing targets look the same")
}

func TestUpdateUser_PartialUpdate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	u := register(t, f, map[string]any{
		"no_telepon": "0812",
		"alamat":     "Jl. Merdeka 1",
		"id_desa":    int64(1),
	})
	actor := &rbac.Actor{ID: u.ID, Role: account.RoleWarga}

	updated, err := f.svc.UpdateUser(context.Background(), actor, u.ID, validator.Input{
		"nama":   "Bob",
		"email":  "bob@x.com",
		"alamat": nil,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.NoTelepon, "omitted key keeps the stored value")
	assert.Equal(t, "0812", *updated.NoTelepon)
	assert.Nil(t, updated.Alamat, "explicit null clears the value")
	require.NotNil(t, updated.IDDesa)
	assert.Equal(t, int64(1), *updated.IDDesa)
	assert.Equal(t, "bob", updated.Username)
}

func TestUpdateUser_Password(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	u := register(t, f, nil)
	actor := &rbac.Actor{ID: u.ID, Role: account.RoleWarga}

	_, err := f.svc.UpdateUser(context.Background(), actor, u.ID, validator.Input{
		"nama": "Bob", "email": "bob@x.com", "password": "abc",
	})
	verrs := validationErrors(t, err)
	assert.Equal(t, "Password minimal 6 karakter", verrs.Message("password"))

	_, err = f.svc.UpdateUser(context.Background(), actor, u.ID, validator.Input{
		"nama": "Bob", "email": "bob@x.com", "password": nil,
	})
	verrs = validationErrors(t, err)
	assert.Equal(t, "Password wajib diisi", verrs.Message("password"), "a present but null password is rejected")

	_, err = f.svc.UpdateUser(context.Background(), actor, u.ID, validator.Input{
		"nama": "Bob", "email": "bob@x.com", "password": "newsecret",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), validator.Input{"username": "bob", "password": "secret"})
	assert.ErrorIs(t, err, account.ErrInvalidCredentials)

	logged, err := f.svc.Login(context.Background(), validator.Input{"username": "bob", "password": "newsecret"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
}

func TestGetUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	u := register(t, f, nil)

	got, err := f.svc.GetUser(context.Background(), &rbac.Actor{ID: u.ID, Role: account.RoleWarga}, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = f.svc.GetUser(context.Background(), &rbac.Actor{ID: u.ID + 1, Role: account.RoleWarga}, u.ID)
	assert.ErrorIs(t, err, request.ErrAuthorizationDenied)

	_, err = f.svc.GetUser(context.Background(), &rbac.Actor{ID: 1, Role: account.RoleAdmin}, 999)
	assert.ErrorIs(t, err, account.ErrUserNotFound)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	u := register(t, f, nil)

	got, err := f.svc.Login(context.Background(), validator.Input{"username": "bob", "password": "secret"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.svc.Login(context.Background(), validator.Input{"username": "ghost", "password": "secret"})
	assert.ErrorIs(t, err, account.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), validator.Input{"username": "bob"})
	verrs := validationErrors(t, err)
	assert.Equal(t, []string{"password"}, verrs.Fields())
}

func TestLogin_UnknownUserCostsAsMuchAsWrongPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("measures bcrypt timing")
	}

	mirror := lookups.NewMemory()
	store := account.NewMemoryStorage(mirror)
	store.AddDesa(1, "Sukamaju")
	svc := account.NewService(request.NewPipeline(mirror), store, account.WithBcryptCost(bcrypt.DefaultCost))
	ctx := context.Background()

	_, err := svc.Register(ctx, nil, registerInput(nil))
	require.NoError(t, err)

	login := func(username string) time.Duration {
		start := time.Now()
		_, err := svc.Login(ctx, validator.Input{"username": username, "password": "wrong"})
		require.ErrorIs(t, err, account.ErrInvalidCredentials)
		return time.Since(start)
	}

	login("ghost") // builds the decoy hash
	wrongPassword := login("bob")
	unknownUser := login("ghost")

	assert.GreaterOrEqual(t, unknownUser, wrongPassword/4,
		"unknown user took %s, wrong password took %s", unknownUser, wrongPassword)
}

func TestUpdatePolicyOption(t *testing.T) {
	t.Parallel()

	e, err := rbac.NewCasbinEnforcer(account.PolicyRules(), nil)
	require.NoError(t, err)

	mirror := lookups.NewMemory()
	store := account.NewMemoryStorage(mirror)
	svc := account.NewService(request.NewPipeline(mirror), store,
		account.WithBcryptCost(bcrypt.MinCost),
		account.WithUpdatePolicy(rbac.NewCasbinPolicy(e, account.PermUsersUpdate, nil)),
		account.WithReadPolicy(rbac.NewCasbinPolicy(e, account.PermUsersRead, nil)),
	)

	u, err := svc.Register(context.Background(), nil, registerInput(nil))
	require.NoError(t, err)

	_, err = svc.GetUser(context.Background(), &rbac.Actor{ID: u.ID, Role: account.RoleOperatorDesa}, u.ID)
	assert.NoError(t, err)

	_, err = svc.UpdateUser(context.Background(), &rbac.Actor{ID: u.ID + 1, Role: account.RolePetugasBPBD}, u.ID,
		validator.Input{"nama": "X", "email": "bob@x.com"})
	assert.ErrorIs(t, err, request.ErrAuthorizationDenied)

	_, err = svc.UpdateUser(context.Background(), &rbac.Actor{ID: u.ID + 1, Role: account.RoleAdmin}, u.ID,
		validator.Input{"nama": "X", "email": "bob@x.com"})
	assert.NoError(t, err)
}

func TestNewService_PanicsWithoutDependencies(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { account.NewService(nil, account.NewMemoryStorage(nil)) })
	assert.Panics(t, func() { account.NewService(request.NewPipeline(nil), nil) })
}
