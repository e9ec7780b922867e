// Package editability answers whether the requirements of a tailoring may
// still be modified.
//
// A Policy is a boolean predicate over (project, tailoring). Always gives a
// constant answer; LockPolicy consults a LockStore (in memory or Redis) and
// answers false when the store cannot be read. Router picks the policy of
// the tenant bound to the context and falls back to a default, which is
// "editable" unless configured otherwise.
package editability
