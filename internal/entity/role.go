package entity

import "fmt"

// Role is the closed set of account kinds. Every switch over Role lists all
// three variants and treats anything else as an error.
type Role string

const (
	RoleNormalUser  Role = "normal_user"
	RoleStoreOwner  Role = "store_owner"
	RoleSystemAdmin Role = "system_admin"
)

func Roles() []Role {
	return []Role{RoleNormalUser, RoleStoreOwner, RoleSystemAdmin}
}

func RoleNames() []string {
	names := make([]string, 0, 3)
	for _, r := range Roles() {
		names = append(names, string(r))
	}
	return names
}

func (r Role) Valid() bool {
	switch r {
	case RoleNormalUser, RoleStoreOwner, RoleSystemAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// RoleAfterStoreCreated is the owner's role once a store is assigned to them.
// Anyone who is not already a store owner becomes one, admins included.
func RoleAfterStoreCreated(current Role) (next Role, changed bool, err error) {
	switch current {
	case RoleNormalUser, RoleSystemAdmin:
		return RoleStoreOwner, true, nil
	case RoleStoreOwner:
		return current, false, nil
	default:
		return "", false, fmt.Errorf("unknown role %q", current)
	}
}

// RoleAfterStoreDeleted is the owner's role once one of their stores is gone.
// A store owner with no remaining stores goes back to normal user.
func RoleAfterStoreDeleted(current Role, remainingStores int64) (next Role, changed bool, err error) {
	switch current {
	case RoleStoreOwner:
		if remainingStores == 0 {
			return RoleNormalUser, true, nil
		}
		return current, false, nil
	case RoleNormalUser, RoleSystemAdmin:
		return current, false, nil
	default:
		return "", false, fmt.Errorf("unknown role %q", current)
	}
}
