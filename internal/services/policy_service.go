package services

import (
	"github.com/casbin/casbin/v2"

	"github.com/creostudios/studiosvc/domain"
)

// Route permissions installed on an empty policy store. Admins additionally
// inherit every client permission through a grouping policy.
var defaultPolicies = [][3]string{
	{"role_user", "/api/auth/me", "GET"},
	{"role_user", "/api/auth/logout", "POST"},
	{"role_user", "/api/apply", "POST"},
	{"role_user", "/api/applications", "GET"},
	{"role_admin", "/api/applications/all", "GET"},
	{"role_admin", "/api/applications/:id/status", "PUT"},
	{"role_admin", "/api/applications/:id/deliver", "PUT"},
	{"role_admin", "/api/upload", "POST"},
	{"role_admin", "/api/uploads/list", "GET"},
}

// PolicyServiceImpl implements domain.PolicyService using Casbin
type PolicyServiceImpl struct {
	enforcer *casbin.Enforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// SeedDefaults installs the default route policies. A store that already
// holds policies is left untouched so operator edits survive restarts.
func (p *PolicyServiceImpl) SeedDefaults() error {
	existing, err := p.enforcer.GetPolicy()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, pol := range defaultPolicies {
		if _, err := p.enforcer.AddPolicy(pol[0], pol[1], pol[2]); err != nil {
			return err
		}
	}
	if _, err := p.enforcer.AddGroupingPolicy("role_admin", "role_user"); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	if _, err := p.enforcer.AddPolicy(role, resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	if _, err := p.enforcer.RemovePolicy(role, resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}
