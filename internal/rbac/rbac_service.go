package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

// Roles carried in the JWT. The string values predate this service and are
// kept as-is for client compatibility.
const (
	RoleAdminRH   = "ADMIN_RH"
	RoleSalarie   = "SALARIE"
	RoleStagiaire = "STAGIAIRE"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// NewService builds an enforcer over the fixed three-role policy. Policies
// live in code because the role set is closed; there is no per-tenant policy
// storage.
func NewService() (Service, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range defaultPolicies() {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}

func defaultPolicies() [][3]string {
	adminResources := []string{
		"user", "department", "leave", "balance", "contract",
		"attestation", "presence", "report", "notification", "stage",
	}
	adminActions := []string{"create", "read", "update", "delete", "approve"}

	var policies [][3]string
	for _, res := range adminResources {
		for _, act := range adminActions {
			policies = append(policies, [3]string{RoleAdminRH, res, act})
		}
	}

	staff := [][3]string{
		{RoleSalarie, "leave", "create"},
		{RoleSalarie, "leave", "read"},
		{RoleSalarie, "leave", "delete"},
		{RoleSalarie, "balance", "read"},
		{RoleSalarie, "contract", "read"},
		{RoleSalarie, "attestation", "create"},
		{RoleSalarie, "attestation", "read"},
		{RoleSalarie, "presence", "create"},
		{RoleSalarie, "presence", "read"},
		{RoleSalarie, "notification", "read"},
		{RoleSalarie, "notification", "update"},
		{RoleSalarie, "stage", "read"},
		{RoleSalarie, "stage", "approve"},

		{RoleStagiaire, "leave", "create"},
		{RoleStagiaire, "leave", "read"},
		{RoleStagiaire, "leave", "delete"},
		{RoleStagiaire, "balance", "read"},
		{RoleStagiaire, "contract", "read"},
		{RoleStagiaire, "attestation", "create"},
		{RoleStagiaire, "attestation", "read"},
		{RoleStagiaire, "presence", "create"},
		{RoleStagiaire, "presence", "read"},
		{RoleStagiaire, "report", "create"},
		{RoleStagiaire, "report", "read"},
		{RoleStagiaire, "notification", "read"},
		{RoleStagiaire, "notification", "update"},
		{RoleStagiaire, "stage", "read"},
	}

	return append(policies, staff...)
}
