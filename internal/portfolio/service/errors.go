package service

import (
	"errors"
	"fmt"

	"github.com/batoulgheleb/crisiszone/internal/sentinel"
	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
)

// notFoundOr translates a store lookup failure. Missing records become
// notFound; anything else is an internal failure.
func notFoundOr(err error, notFound error, internalMsg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return notFound
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
}

func doctorNotFound(err error, doctorID fmt.Stringer) error {
	return notFoundOr(err, dErrors.NotFound("Doctor", doctorID), "failed to load doctor")
}

func supervisorNotFound(err error, supervisorID fmt.Stringer) error {
	return notFoundOr(err, dErrors.NotFound("Supervisor", supervisorID), "failed to load supervisor")
}

func curriculumNotFound(err error, curriculumID fmt.Stringer) error {
	return notFoundOr(err, dErrors.NotFound("Curriculum", curriculumID), "failed to load curriculum")
}

func procedureNotFound(err error, procedureID fmt.Stringer) error {
	return notFoundOr(err,
		dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("Procedure with ID %s not found in curriculum", procedureID)),
		"failed to load procedure")
}

func requestNotFound(err error, requestID fmt.Stringer) error {
	return notFoundOr(err, dErrors.NotFound("Request", requestID), "failed to load request")
}

// outcome labels a workflow result for metrics.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	return string(dErrors.CodeOf(err))
}
