package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedIDsAreUUIDs(t *testing.T) {
	for _, raw := range []string{
		NewDoctorID().String(),
		NewSupervisorID().String(),
		NewCurriculumID().String(),
		NewRequestID().String(),
		NewVerificationID().String(),
	} {
		_, err := uuid.Parse(raw)
		require.NoError(t, err, raw)
	}
	assert.NotEqual(t, NewRequestID(), NewRequestID())
}

func TestIsNilTreatsWhitespaceAsBlank(t *testing.T) {
	assert.True(t, DoctorID("").IsNil())
	assert.True(t, SupervisorID("   ").IsNil())
	assert.True(t, RequestID("\t\n").IsNil())
	assert.False(t, ProcedureID("proc-001").IsNil())
	assert.False(t, CurriculumID("cur-gs").IsNil())
}
