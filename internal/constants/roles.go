package constants

import (
	"database/sql/driver"
	"fmt"
)

// Role mirrors the Postgres ENUM 'user_role'
type Role string

const (
	RoleCitizen      Role = "Citizen"
	RoleNGO          Role = "NGO"
	RolePublicWorker Role = "PublicWorker"
	RoleAdmin        Role = "Admin"
)

// Stringer ­– convenient for fmt / logs
func (r Role) String() string { return string(r) }

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(v)
	default:
		return fmt.Errorf("Role: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r Role) Value() (driver.Value, error) { return string(r), nil }

// VerificationStatus mirrors the Postgres ENUM 'verification_status'
type VerificationStatus string

const (
	VerificationNotRequested VerificationStatus = "NotRequested"
	VerificationPending      VerificationStatus = "Pending"
	VerificationApproved     VerificationStatus = "Approved"
	VerificationRejected     VerificationStatus = "Rejected"
)

func (s VerificationStatus) String() string { return string(s) }

// Scan implements the sql.Scanner interface
func (s *VerificationStatus) Scan(src interface{}) error {
	if src == nil {
		*s = VerificationNotRequested
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = VerificationStatus(v)
	case []byte:
		*s = VerificationStatus(v)
	default:
		return fmt.Errorf("VerificationStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s VerificationStatus) Value() (driver.Value, error) { return string(s), nil }
