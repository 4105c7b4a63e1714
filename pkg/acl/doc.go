// Package acl models the per-object access-control policy and decides
// read/write requests against it.
//
// A policy is an owner, a visibility, and an ordered list of group
// rules. It lives in the backend's object metadata; the store here only
// defines the shape and the encoding, persistence is delegated through
// the MetadataStore interface. An object with no attached policy is a
// valid state ("absent"), distinct from the object not existing, and the
// decision engine fails closed on it.
//
// Decision order, first match wins:
//
//  1. absent policy        -> deny
//  2. public + read        -> allow, any caller
//  3. caller is owner      -> allow, any permission
//  4. group rules in order -> allow on first covering match
//  5. otherwise            -> deny
//
// A group rule matches when the caller's group set contains the rule's
// group verbatim; write permission covers read.
package acl
