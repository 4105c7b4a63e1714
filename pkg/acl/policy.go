package acl

import (
	"strings"
)

// Visibility controls who may read an object.
type Visibility string

const (
	// VisibilityPublic makes the object readable by anyone.
	VisibilityPublic Visibility = "public"

	// VisibilityPrivate restricts reads to the owner and group rules.
	// This is the default until a policy explicitly says otherwise.
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is a recognized visibility.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Permission is the access level of a request or grant.
type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
)

// Covers reports whether a granted permission satisfies a requested one.
// Write covers read.
func (p Permission) Covers(requested Permission) bool {
	if p == requested {
		return true
	}
	return p == PermissionWrite && requested == PermissionRead
}

// GroupRule grants one permission to one group. Rules evaluate in list
// order.
type GroupRule struct {
	Group      string
	Permission Permission
}

// Policy is the owner/visibility/group-rule record attached to an
// object.
type Policy struct {
	Owner      string
	Visibility Visibility
	GroupRules []GroupRule
}

// Metadata keys holding the encoded policy on the backend object.
const (
	metaOwner      = "acl-owner"
	metaVisibility = "acl-visibility"
	metaGroups     = "acl-groups"
)

// encode flattens a policy into backend object metadata.
func (p Policy) encode() map[string]string {
	visibility := p.Visibility
	if !visibility.Valid() {
		visibility = VisibilityPrivate
	}

	md := map[string]string{
		metaOwner:      p.Owner,
		metaVisibility: string(visibility),
	}

	if len(p.GroupRules) > 0 {
		rules := make([]string, 0, len(p.GroupRules))
		for _, r := range p.GroupRules {
			rules = append(rules, r.Group+"="+string(r.Permission))
		}
		md[metaGroups] = strings.Join(rules, ",")
	}

	return md
}

// decodePolicy reads a policy back out of object metadata. The second
// return value is false when no policy keys are present at all (the
// "absent" state). Partial metadata decodes with private defaults so a
// half-written policy can never widen access.
func decodePolicy(md map[string]string) (Policy, bool) {
	owner, hasOwner := md[metaOwner]
	visibility, hasVisibility := md[metaVisibility]
	groups, hasGroups := md[metaGroups]

	if !hasOwner && !hasVisibility && !hasGroups {
		return Policy{}, false
	}

	p := Policy{
		Owner:      owner,
		Visibility: Visibility(visibility),
	}
	if !p.Visibility.Valid() {
		p.Visibility = VisibilityPrivate
	}

	for rule := range strings.SplitSeq(groups, ",") {
		group, perm, ok := strings.Cut(rule, "=")
		if !ok || group == "" {
			continue
		}
		if perm != string(PermissionRead) && perm != string(PermissionWrite) {
			continue
		}
		p.GroupRules = append(p.GroupRules, GroupRule{Group: group, Permission: Permission(perm)})
	}

	return p, true
}
