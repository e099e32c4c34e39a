package enums

// Role is the externally-resolved role claim attached to each request.
// The service trusts the upstream gateway to have verified it.
type Role string

const (
	RolePartsAdmin     Role = "PartsAdmin"
	RoleInventoryAdmin Role = "InventoryAdmin"
)

// CommitRoles may perform stock mutations and read the ledger.
var CommitRoles = []Role{RolePartsAdmin, RoleInventoryAdmin}

func (r Role) IsValid() bool {
	switch r {
	case RolePartsAdmin, RoleInventoryAdmin:
		return true
	}
	return false
}
