package acl

import "slices"

// Caller identifies the requester. A zero Caller is anonymous.
type Caller struct {
	ID     string
	Groups []string
}

// Anonymous reports whether the caller carries no identity.
func (c Caller) Anonymous() bool {
	return c.ID == ""
}

// CanAccess decides a request against a policy. First match wins; the
// function is pure and never mutates the policy.
func CanAccess(caller Caller, policy *Policy, requested Permission) bool {
	if policy == nil {
		return false
	}

	if policy.Visibility == VisibilityPublic && requested == PermissionRead {
		return true
	}

	if !caller.Anonymous() && caller.ID == policy.Owner {
		return true
	}

	for _, rule := range policy.GroupRules {
		if slices.Contains(caller.Groups, rule.Group) && rule.Permission.Covers(requested) {
			return true
		}
	}

	return false
}
