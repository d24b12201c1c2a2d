package session

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAnonymous = "anonymous"
	RoleMember    = "member"
)

const routeModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj)
`

var anonymousRoutes = []string{
	PathLogin,
	PathSignup,
	PathCallback,
	PathError,
	"/auth/*",
}

var memberRoutes = []string{
	"/",
	"/home",
	"/dashboard",
	"/employees",
	"/employees/:id",
	"/preferences/*",
	"/forms",
	"/forms/*",
	"/ws/*",
}

// RoutePolicy decides which role may open which path.
type RoutePolicy struct {
	enforcer *casbin.Enforcer
}

func NewRoutePolicy() (*RoutePolicy, error) {
	m, err := model.NewModelFromString(routeModel)
	if err != nil {
		return nil, fmt.Errorf("route model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("route enforcer: %w", err)
	}

	for _, p := range anonymousRoutes {
		if _, err := e.AddPolicy(RoleAnonymous, p); err != nil {
			return nil, err
		}
	}
	for _, p := range memberRoutes {
		if _, err := e.AddPolicy(RoleMember, p); err != nil {
			return nil, err
		}
	}
	// Members may still open the auth pages.
	if _, err := e.AddGroupingPolicy(RoleMember, RoleAnonymous); err != nil {
		return nil, err
	}

	return &RoutePolicy{enforcer: e}, nil
}

func (p *RoutePolicy) Allowed(role, path string) bool {
	ok, err := p.enforcer.Enforce(role, path)
	return err == nil && ok
}

// IsProtected reports whether path is a known page that requires a member.
func (p *RoutePolicy) IsProtected(path string) bool {
	return !p.Allowed(RoleAnonymous, path) && p.Allowed(RoleMember, path)
}

// IsKnown reports whether any role may open path.
func (p *RoutePolicy) IsKnown(path string) bool {
	return p.Allowed(RoleMember, path)
}
