package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/repo"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Rule names an authorization policy. Every mutating endpoint evaluates
// exactly one rule through AccessService before touching any row.
type Rule int

const (
	// RuleOwnerOrAdmin allows the resource creator or any admin.
	RuleOwnerOrAdmin Rule = iota
	// RuleAdminOnly allows admins, full stop. ownerID is ignored.
	RuleAdminOnly
)

// Allowed is the pure authorization decision.
func Allowed(actorID uint, role Role, ownerID uint, rule Rule) bool {
	switch rule {
	case RuleOwnerOrAdmin:
		return actorID == ownerID || role == RoleAdmin
	case RuleAdminOnly:
		return role == RoleAdmin
	}
	return false
}

type AccessService struct {
	Repo *repo.GormRepo
}

// Authorize resolves the actor's role fresh from the store and evaluates
// rule. The role lookup is skipped when the actor already owns the resource.
// Deny is always ErrForbidden, never a partial response.
func (s *AccessService) Authorize(ctx context.Context, actorID, ownerID uint, rule Rule) error {
	if rule == RuleOwnerOrAdmin && actorID == ownerID {
		return nil
	}

	role, err := s.Repo.GetUserRole(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}

	if !Allowed(actorID, Role(role), ownerID, rule) {
		return ErrForbidden
	}
	return nil
}
