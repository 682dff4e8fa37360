package rbac

import (
	"errors"
	"log/slog"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Relation values passed to casbin as the second request field.
const (
	RelationSelf  = "self"
	RelationOther = "other"
	RelationAny   = "*"
)

// casbinModel evaluates (role, relation, action). Roles inherit through g.
const casbinModel = `
[request_definition]
r = sub, rel, act

[policy_definition]
p = sub, rel, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.rel == "*" || r.rel == p.rel) && r.act == p.act
`

// CasbinRule grants Action to Role for resources in Relation.
type CasbinRule struct {
	Role     string
	Relation string
	Action   string
}

// CasbinPolicy authorizes one action through a casbin enforcer. The enforcer
// is built once and only read afterwards.
type CasbinPolicy struct {
	enforcer *casbin.Enforcer
	action   string
	logger   *slog.Logger
}

// NewCasbinEnforcer builds an in-memory enforcer from rules and role
// inheritance (child role -> parent roles).
func NewCasbinEnforcer(rules []CasbinRule, inherits map[string][]string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, errors.Join(ErrInvalidPolicy, err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, errors.Join(ErrInvalidPolicy, err)
	}

	for _, r := range rules {
		if _, err := e.AddPolicy(r.Role, r.Relation, r.Action); err != nil {
			return nil, errors.Join(ErrInvalidPolicy, err)
		}
	}
	for child, parents := range inherits {
		for _, parent := range parents {
			if _, err := e.AddGroupingPolicy(child, parent); err != nil {
				return nil, errors.Join(ErrInvalidPolicy, err)
			}
		}
	}
	return e, nil
}

// NewCasbinPolicy returns a Policy checking action with e.
func NewCasbinPolicy(e *casbin.Enforcer, action string, logger *slog.Logger) *CasbinPolicy {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CasbinPolicy{enforcer: e, action: action, logger: logger}
}

// Decide implements Policy. Enforcer errors deny.
func (p *CasbinPolicy) Decide(actor *Actor, resource Resource) Decision {
	if actor == nil {
		return Deny
	}
	rel := RelationOther
	if actor.ID == resource.ID {
		rel = RelationSelf
	}

	ok, err := p.enforcer.Enforce(actor.Role, rel, p.action)
	if err != nil {
		p.logger.Error("casbin enforce failed",
			slog.String("role", actor.Role),
			slog.String("action", p.action),
			slog.String("error", err.Error()),
		)
		return Deny
	}
	return Decision(ok)
}
