package account

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/simonta/simonta-api/pkg/i18n"
	"github.com/simonta/simonta-api/pkg/logger"
	"github.com/simonta/simonta-api/pkg/rbac"
	"github.com/simonta/simonta-api/pkg/request"
	"github.com/simonta/simonta-api/pkg/validator"
)

// Storage persists accounts.
type Storage interface {
	// CreateUser inserts u and fills its ID and timestamps.
	// Returns ErrDuplicateUsername, ErrDuplicateEmail or ErrDesaNotFound when
	// a constraint rejects the row.
	CreateUser(ctx context.Context, u *StoredUser) error

	// GetUser returns ErrUserNotFound if no account has the id.
	GetUser(ctx context.Context, id int64) (*StoredUser, error)

	GetUserByUsername(ctx context.Context, username string) (*StoredUser, error)

	// UpdateUser overwrites the mutable columns of u and refreshes UpdatedAt.
	UpdateUser(ctx context.Context, u *StoredUser) error
}

// Service implements the account use cases on top of a request.Pipeline.
type Service struct {
	pipeline     *request.Pipeline
	store        Storage
	resolver     *validator.Resolver
	updatePolicy rbac.Policy
	readPolicy   rbac.Policy
	bcryptCost   int
	decoyHash    func() []byte
	logger       *slog.Logger
}

// NewService panics if pipeline or store is nil.
func NewService(pipeline *request.Pipeline, store Storage, opts ...ServiceOption) *Service {
	if pipeline == nil {
		panic("account: request pipeline is required")
	}
	if store == nil {
		panic("account: storage is required")
	}

	s := &Service{
		pipeline:     pipeline,
		store:        store,
		resolver:     validator.NewResolver(),
		updatePolicy: rbac.AdminOrOwner(RoleAdmin),
		readPolicy:   rbac.AdminOrOwner(RoleAdmin),
		bcryptCost:   bcrypt.DefaultCost,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.decoyHash = sync.OnceValue(func() []byte {
		h, _ := bcrypt.GenerateFromPassword([]byte("simonta:unknown-user"), s.bcryptCost)
		return h
	})
	return s
}

// Register validates in and creates the account. Validation failures are
// returned as validator.ValidationErrors.
func (s *Service) Register(ctx context.Context, actor *rbac.Actor, in validator.Input) (User, error) {
	res, err := request.Run(ctx, s.pipeline, RegisterOperation(), actor, nil, in)
	if err != nil {
		return User{}, err
	}
	if err := res.Err(); err != nil {
		return User{}, err
	}

	hash, err := s.hash(res.Value.Password)
	if err != nil {
		return User{}, err
	}

	u := &StoredUser{
		User: User{
			Nama:      res.Value.Nama,
			Username:  res.Value.Username,
			Email:     res.Value.Email,
			Role:      res.Value.Role,
			NoTelepon: res.Value.NoTelepon,
			Alamat:    res.Value.Alamat,
			IDDesa:    res.Value.IDDesa,
		},
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return User{}, s.writeError(ctx, err, ErrFailedToCreateUser)
	}

	s.logger.InfoContext(ctx, "user registered",
		logger.UserID(u.ID),
		logger.Role(u.Role),
	)
	return u.User, nil
}

// UpdateUser applies a partial update to the account targetID on behalf of
// actor. Keys missing from in leave the stored values untouched. Callers
// that may not edit targetID are denied before the account is looked up.
func (s *Service) UpdateUser(ctx context.Context, actor *rbac.Actor, targetID int64, in validator.Input) (User, error) {
	if rbac.Authorize(actor, rbac.Resource{ID: targetID}, s.updatePolicy) == rbac.Deny {
		return User{}, request.ErrAuthorizationDenied
	}
	current, err := s.load(ctx, targetID)
	if err != nil {
		return User{}, err
	}

	res, err := request.Run(ctx, s.pipeline, UpdateUserOperation(targetID, s.updatePolicy), actor, &rbac.Resource{ID: targetID}, in)
	if err != nil {
		return User{}, err
	}
	if err := res.Err(); err != nil {
		return User{}, err
	}

	upd := res.Value
	current.Nama = upd.Nama
	current.Email = upd.Email
	upd.NoTelepon.apply(&current.NoTelepon)
	upd.Alamat.apply(&current.Alamat)
	upd.IDDesa.apply(&current.IDDesa)
	if upd.Password != nil {
		hash, err := s.hash(*upd.Password)
		if err != nil {
			return User{}, err
		}
		current.PasswordHash = hash
	}

	if err := s.store.UpdateUser(ctx, current); err != nil {
		return User{}, s.writeError(ctx, err, ErrFailedToUpdateUser)
	}

	s.logger.InfoContext(ctx, "user updated",
		logger.UserID(current.ID),
		slog.Bool("password_changed", upd.Password != nil),
	)
	return current.User, nil
}

// GetUser returns the account id if actor may read it.
func (s *Service) GetUser(ctx context.Context, actor *rbac.Actor, id int64) (User, error) {
	if rbac.Authorize(actor, rbac.Resource{ID: id}, s.readPolicy) == rbac.Deny {
		return User{}, request.ErrAuthorizationDenied
	}
	u, err := s.load(ctx, id)
	if err != nil {
		return User{}, err
	}
	return u.User, nil
}

// Login returns the account matching the credentials, or
// ErrInvalidCredentials without telling which part was wrong.
func (s *Service) Login(ctx context.Context, in validator.Input) (User, error) {
	res, err := request.Run(ctx, s.pipeline, LoginOperation(), nil, nil, in)
	if err != nil {
		return User{}, err
	}
	if err := res.Err(); err != nil {
		return User{}, err
	}

	u, err := s.store.GetUserByUsername(ctx, res.Value.Username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		// Same bcrypt work as a wrong password, so response time does not
		// reveal which usernames exist.
		_ = bcrypt.CompareHashAndPassword(s.decoyHash(), []byte(res.Value.Password))
		return User{}, ErrInvalidCredentials
	case err != nil:
		return User{}, errors.Join(ErrFailedToLoadUser, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(res.Value.Password)); err != nil {
		s.logger.InfoContext(ctx, "login rejected", logger.UserID(u.ID))
		return User{}, ErrInvalidCredentials
	}
	return u.User, nil
}

func (s *Service) load(ctx context.Context, id int64) (*StoredUser, error) {
	u, err := s.store.GetUser(ctx, id)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return nil, err
	case err != nil:
		return nil, errors.Join(ErrFailedToLoadUser, err)
	}
	return u, nil
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", errors.Join(ErrFailedToHashPassword, err)
	}
	return string(b), nil
}

// writeError turns constraint violations reported by the store into the
// field errors the rules would have produced, for writes that raced past
// the lookup checks.
func (s *Service) writeError(ctx context.Context, err, wrap error) error {
	var fe validator.ValidationError
	switch {
	case errors.Is(err, ErrDuplicateUsername):
		fe = validator.FieldError("username", validator.UniqueExternal(EntityUsers, "username"))
	case errors.Is(err, ErrDuplicateEmail):
		fe = validator.FieldError("email", validator.UniqueExternal(EntityUsers, "email"))
	case errors.Is(err, ErrDesaNotFound):
		fe = validator.FieldError("id_desa", validator.ExistsExternal(EntityDesa, "id"))
	case errors.Is(err, ErrUserNotFound):
		return err
	default:
		return errors.Join(wrap, err)
	}

	s.logger.WarnContext(ctx, "constraint violation after validation",
		logger.Fields([]string{fe.Field}),
		logger.Error(err),
	)
	return s.resolver.WithLanguage(i18n.Locale(ctx)).ResolveAll(validator.ValidationErrors{fe}, labels, messages)
}
