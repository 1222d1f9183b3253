// Package authz centralizes every access rule of the API in one table-driven
// engine. Services resolve the target's ancestry (project owner, author) into a
// Scope, then ask the engine for a decision; no handler or service carries its
// own permission branches.
package authz

import "fmt"

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Kind string

const (
	KindProject     Kind = "project"
	KindContributor Kind = "contributor"
	KindIssue       Kind = "issue"
	KindComment     Kind = "comment"
)

// Scope is the resolved ancestry of the target resource. For an issue or
// comment the service walks the containment chain (comment → issue → project)
// before building the scope; the engine never inspects child fields to answer
// membership questions.
type Scope struct {
	ProjectID      uint
	ProjectOwnerID uint
	// AuthorID is set for issues and comments only.
	AuthorID uint
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// MembershipResolver answers whether a user is a contributor of a project.
// The project owner is materialized as a contributor row, so a single lookup
// covers both relationships.
type MembershipResolver interface {
	IsContributor(projectID, userID uint) (bool, error)
}

type Engine struct {
	graph MembershipResolver
}

func NewEngine(graph MembershipResolver) *Engine {
	return &Engine{graph: graph}
}

type rule func(e *Engine, principal uint, s Scope) (Decision, error)

func isOwner(principal uint, s Scope) bool { return principal != 0 && principal == s.ProjectOwnerID }

func (e *Engine) isMember(principal uint, s Scope) (bool, error) {
	if isOwner(principal, s) {
		return true, nil
	}
	return e.graph.IsContributor(s.ProjectID, principal)
}

func memberRule(reason string) rule {
	return func(e *Engine, principal uint, s Scope) (Decision, error) {
		ok, err := e.isMember(principal, s)
		if err != nil {
			return Decision{}, err
		}
		if !ok {
			return deny(reason), nil
		}
		return allow(), nil
	}
}

func ownerRule(reason string) rule {
	return func(e *Engine, principal uint, s Scope) (Decision, error) {
		if !isOwner(principal, s) {
			return deny(reason), nil
		}
		return allow(), nil
	}
}

// authorRule grants only the resource's author. Deliberately does not fall
// back to the project owner: ownership manages membership and project
// metadata, authorship governs issue and comment content.
func authorRule(reason string) rule {
	return func(e *Engine, principal uint, s Scope) (Decision, error) {
		if principal == 0 || principal != s.AuthorID {
			return deny(reason), nil
		}
		return allow(), nil
	}
}

func anyAuthenticated(e *Engine, principal uint, s Scope) (Decision, error) {
	if principal == 0 {
		return deny("authentication required"), nil
	}
	return allow(), nil
}

var rules = map[Kind]map[Action]rule{
	KindProject: {
		ActionRead:   memberRule("not a contributor of this project"),
		ActionCreate: anyAuthenticated,
		ActionUpdate: ownerRule("only the project owner may edit the project"),
		ActionDelete: ownerRule("only the project owner may delete the project"),
	},
	KindContributor: {
		ActionRead:   memberRule("not a contributor of this project"),
		ActionCreate: ownerRule("only the project owner may add contributors"),
		ActionUpdate: ownerRule("only the project owner may manage contributors"),
		ActionDelete: ownerRule("only the project owner may remove contributors"),
	},
	KindIssue: {
		ActionRead:   memberRule("not a contributor of this project"),
		ActionCreate: memberRule("not a contributor of this project"),
		ActionUpdate: authorRule("only the issue author may edit this issue"),
		ActionDelete: authorRule("only the issue author may delete this issue"),
	},
	KindComment: {
		ActionRead:   memberRule("not a contributor of this project"),
		ActionCreate: memberRule("not a contributor of this project"),
		ActionUpdate: authorRule("only the comment author may edit this comment"),
		ActionDelete: authorRule("only the comment author may delete this comment"),
	},
}

// Decide returns ALLOW or DENY(reason) for a principal attempting an action on
// a resource kind within the given scope.
func (e *Engine) Decide(principal uint, action Action, kind Kind, scope Scope) (Decision, error) {
	kindRules, ok := rules[kind]
	if !ok {
		return Decision{}, fmt.Errorf("authz: unknown resource kind %q", kind)
	}
	r, ok := kindRules[action]
	if !ok {
		return Decision{}, fmt.Errorf("authz: unknown action %q", action)
	}
	return r(e, principal, scope)
}
