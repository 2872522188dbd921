package domain

// ResourceRule is the role allow-list for one upstream REST resource.
type ResourceRule struct {
	Read  RoleSet
	Write RoleSet
}

// Allows reports whether role may use the resource. Reads are GET/HEAD.
func (r ResourceRule) Allows(role Role, write bool) bool {
	if write {
		return r.Write.Has(role)
	}
	return r.Read.Has(role)
}

// ResourceRules gates the upstream resources the dashboard pages consume.
var ResourceRules = map[string]ResourceRule{
	"customers":      {Read: AllRoles, Write: AllRoles},
	"loans":          {Read: AllRoles, Write: AllRoles},
	"installments":   {Read: AllRoles, Write: AllRoles},
	"line-types":     {Read: AllRoles, Write: RoleSet{RoleAdmin, RoleManager}},
	"loan-types":     {Read: AllRoles, Write: RoleSet{RoleAdmin, RoleManager}},
	"users":          {Read: RoleSet{RoleAdmin}, Write: RoleSet{RoleAdmin}},
	"expenses":       {Read: RoleSet{RoleAdmin}, Write: RoleSet{RoleAdmin}},
	"expenses-types": {Read: RoleSet{RoleAdmin}, Write: RoleSet{RoleAdmin}},
}
