// Package domain provides typed identifiers so a DoctorID can never be passed
// where a SupervisorID is expected.
package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Identifiers are opaque strings. Generated ones are UUIDv4, but seeded and
// imported records may carry any non-blank value.
type (
	DoctorID       string
	SupervisorID   string
	CurriculumID   string
	ProcedureID    string
	RequestID      string
	VerificationID string
)

// Constructors for new records.

func NewDoctorID() DoctorID             { return DoctorID(uuid.NewString()) }
func NewSupervisorID() SupervisorID     { return SupervisorID(uuid.NewString()) }
func NewCurriculumID() CurriculumID     { return CurriculumID(uuid.NewString()) }
func NewRequestID() RequestID           { return RequestID(uuid.NewString()) }
func NewVerificationID() VerificationID { return VerificationID(uuid.NewString()) }

// String methods - for logging and debugging.

func (id DoctorID) String() string       { return string(id) }
func (id SupervisorID) String() string   { return string(id) }
func (id CurriculumID) String() string   { return string(id) }
func (id ProcedureID) String() string    { return string(id) }
func (id RequestID) String() string      { return string(id) }
func (id VerificationID) String() string { return string(id) }

// IsNil reports a blank identifier - used for service-layer validation.

func (id DoctorID) IsNil() bool       { return isBlank(string(id)) }
func (id SupervisorID) IsNil() bool   { return isBlank(string(id)) }
func (id CurriculumID) IsNil() bool   { return isBlank(string(id)) }
func (id ProcedureID) IsNil() bool    { return isBlank(string(id)) }
func (id RequestID) IsNil() bool      { return isBlank(string(id)) }
func (id VerificationID) IsNil() bool { return isBlank(string(id)) }

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
