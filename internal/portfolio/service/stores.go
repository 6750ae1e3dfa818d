package service

// Repository is satisfied by every full repository implementation.
type Repository interface {
	DoctorStore
	SupervisorStore
	CurriculumStore
	RequestStore
	VerificationStore
	StatsStore
}

// StoresFrom wires every store slot to repo.
func StoresFrom(repo Repository) Stores {
	return Stores{
		Doctors:       repo,
		Supervisors:   repo,
		Curricula:     repo,
		Requests:      repo,
		Verifications: repo,
		Stats:         repo,
	}
}
