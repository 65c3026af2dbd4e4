package services

import (
	"context"
	"strings"
	"unicode"

	"mitche/backend/internal/db/repositories"
	"mitche/backend/internal/models/dtos"
)

const (
	symbolicNameMinLen = 3
	symbolicNameMaxLen = 24
)

// reservedSymbolicNames can never be claimed as a pseudonymous identity.
var reservedSymbolicNames = map[string]struct{}{
	"admin":     {},
	"mitche":    {},
	"moderator": {},
	"system":    {},
	"anonymous": {},
}

// IdentityService validates symbolic (pseudonymous) display names. Invalid
// names are reported as a result value for inline form feedback, never as an
// error.
type IdentityService struct {
	userRepo *repositories.UserRepository
}

func NewIdentityService(userRepo *repositories.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// ValidateSymbolicName checks shape and availability of a candidate name.
func (s *IdentityService) ValidateSymbolicName(ctx context.Context, name string) dtos.IdentityValidationResult {
	name = strings.TrimSpace(name)

	if len(name) < symbolicNameMinLen {
		return dtos.IdentityValidationResult{Valid: false, Error: "symbolic name must be at least 3 characters"}
	}
	if len(name) > symbolicNameMaxLen {
		return dtos.IdentityValidationResult{Valid: false, Error: "symbolic name must be at most 24 characters"}
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return dtos.IdentityValidationResult{Valid: false, Error: "symbolic name may only contain letters, digits, '_' and '-'"}
		}
	}

	if _, reserved := reservedSymbolicNames[strings.ToLower(name)]; reserved {
		return dtos.IdentityValidationResult{Valid: false, Error: "this symbolic name is reserved"}
	}

	if _, err := s.userRepo.GetBySymbolicName(ctx, name); err == nil {
		return dtos.IdentityValidationResult{Valid: false, Error: "this symbolic name is already taken"}
	}

	return dtos.IdentityValidationResult{Valid: true}
}
