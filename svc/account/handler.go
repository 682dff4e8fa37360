package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/simonta/simonta-api/handler"
	"github.com/simonta/simonta-api/pkg/binder"
	"github.com/simonta/simonta-api/pkg/rbac"
	"github.com/simonta/simonta-api/pkg/validator"
)

// TokenIssuer mints access tokens for authenticated users. *jwt.Service
// satisfies it.
type TokenIssuer interface {
	Issue(actor rbac.Actor) (string, time.Time, error)
}

// Handler exposes the Service over HTTP.
type Handler struct {
	svc          *Service
	tokens       TokenIssuer
	errorHandler handler.ErrorHandler[handler.Context]
	maxBody      int64
	throttle     []func(http.Handler) http.Handler
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithTokenIssuer enables POST /login.
func WithTokenIssuer(t TokenIssuer) HandlerOption {
	return func(h *Handler) { h.tokens = t }
}

// WithErrorHandler sets the error responder, usually
// handler.NewErrorHandler with the application translator.
func WithErrorHandler(eh handler.ErrorHandler[handler.Context]) HandlerOption {
	return func(h *Handler) {
		if eh != nil {
			h.errorHandler = eh
		}
	}
}

func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *Handler) { h.maxBody = n }
}

// WithThrottle guards the anonymous endpoints, register and login, with
// the given middleware.
func WithThrottle(mw ...func(http.Handler) http.Handler) HandlerOption {
	return func(h *Handler) { h.throttle = append(h.throttle, mw...) }
}

func NewHandler(svc *Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:          svc,
		errorHandler: handler.NewErrorHandler(nil, nil),
		maxBody:      binder.DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the account endpoints:
//
//	POST /register
//	POST /login       (only with a TokenIssuer)
//	GET  /users/{id}
//	PUT  /users/{id}
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(h.throttle...)
		r.Post("/register", wrap[bodyRequest](h, h.register, h.bindBody))
		if h.tokens != nil {
			r.Post("/login", wrap[bodyRequest](h, h.login, h.bindBody))
		}
	})
	r.Get("/users/{id}", wrap[userRequest](h, h.getUser, bindUserID))
	r.Put("/users/{id}", wrap[userRequest](h, h.updateUser, bindUserID, h.bindUserBody))
	return r
}

func wrap[R any](h *Handler, fn handler.HandlerFunc[handler.Context, R], binders ...handler.Bind[R]) http.HandlerFunc {
	return handler.Wrap(fn,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](h.errorHandler),
	)
}

type bodyRequest struct {
	Input validator.Input
}

type userRequest struct {
	ID    int64
	Input validator.Input
}

func (h *Handler) bindBody(r *http.Request, req *bodyRequest) error {
	in, err := binder.JSONInput(r, h.maxBody)
	req.Input = in
	return err
}

func (h *Handler) bindUserBody(r *http.Request, req *userRequest) error {
	in, err := binder.JSONInput(r, h.maxBody)
	req.Input = in
	return err
}

func bindUserID(r *http.Request, req *userRequest) error {
	id, err := binder.PathID(r, "id")
	req.ID = id
	return err
}

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

func (h *Handler) register(ctx handler.Context, req bodyRequest) handler.Response {
	u, err := h.svc.Register(ctx, rbac.ActorPtrFromContext(ctx), req.Input)
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.JSON(u, handler.WithJSONStatus(http.StatusCreated))
}

func (h *Handler) login(ctx handler.Context, req bodyRequest) handler.Response {
	u, err := h.svc.Login(ctx, req.Input)
	if err != nil {
		return handler.Error(httpError(err))
	}
	token, exp, err := h.tokens.Issue(rbac.Actor{ID: u.ID, Role: u.Role})
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(loginResponse{Token: token, TokenType: "Bearer", ExpiresAt: exp, User: u})
}

func (h *Handler) getUser(ctx handler.Context, req userRequest) handler.Response {
	u, err := h.svc.GetUser(ctx, rbac.ActorPtrFromContext(ctx), req.ID)
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.JSON(u)
}

func (h *Handler) updateUser(ctx handler.Context, req userRequest) handler.Response {
	u, err := h.svc.UpdateUser(ctx, rbac.ActorPtrFromContext(ctx), req.ID, req.Input)
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.JSON(u)
}

// httpError attaches a status to account errors the generic classifier
// does not know about.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return errors.Join(handler.ErrNotFound, err)
	case errors.Is(err, ErrInvalidCredentials):
		return errors.Join(handler.ErrUnauthorized, err)
	default:
		return err
	}
}
