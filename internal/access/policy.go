package access

import "github.com/docuvault/docuvault/internal/document"

// Principal is the authenticated identity performing a request, as resolved
// from a verified token. Role holds the role id claimed at login time.
type Principal struct {
	ID   string
	Role string
}

// Policy decides whether a principal may mutate a document. The privileged
// role name is injected configuration so nothing here reads global state.
type Policy struct {
	PrivilegedRole string
}

func NewPolicy(privilegedRole string) Policy {
	return Policy{PrivilegedRole: privilegedRole}
}

// MayMutate allows update and delete only for the document's owner. Role
// membership does not grant mutation rights; matching roles with a different
// owner is still a denial.
func (p Policy) MayMutate(pr Principal, d *document.Document) bool {
	return pr.ID == d.UserID
}
