package drive

import "fmt"

// AccessScope is the visibility of a node.
type AccessScope int

const (
	// AccessPrivate restricts access to the owner and explicit grants.
	AccessPrivate AccessScope = iota

	// AccessAnyoneWithLink lets anyone holding the node URL access it at
	// the sharing link role.
	AccessAnyoneWithLink
)

func (a AccessScope) String() string {
	switch a {
	case AccessPrivate:
		return "PRIVATE"
	case AccessAnyoneWithLink:
		return "ANYONE_WITH_LINK"
	default:
		return "UNKNOWN"
	}
}

// Role is a permission level on a node.
type Role int

const (
	// RoleView allows reading only.
	RoleView Role = iota

	// RoleComment allows reading and commenting.
	RoleComment

	// RoleEdit allows full modification.
	RoleEdit
)

func (r Role) String() string {
	switch r {
	case RoleView:
		return "VIEW"
	case RoleComment:
		return "COMMENT"
	case RoleEdit:
		return "EDIT"
	default:
		return "UNKNOWN"
	}
}

// ParseRole parses the user-facing permission names used by the share
// command ("view", "comment", "edit").
func ParseRole(s string) (Role, error) {
	switch s {
	case "view":
		return RoleView, nil
	case "comment":
		return RoleComment, nil
	case "edit":
		return RoleEdit, nil
	default:
		return 0, fmt.Errorf("unknown permission type %q", s)
	}
}

// Grant is a per-user permission on a node.
type Grant struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Sharing is the complete sharing state of a node.
type Sharing struct {
	// Scope is the node visibility.
	Scope AccessScope `json:"scope"`

	// LinkRole is the role granted to link holders.
	// Only meaningful when Scope is AccessAnyoneWithLink.
	LinkRole Role `json:"link_role"`

	// Grants lists per-user permissions, in grant order.
	Grants []Grant `json:"grants,omitempty"`
}
