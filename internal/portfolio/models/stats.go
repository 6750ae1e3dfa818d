package models

// DoctorStats aggregates a doctor's activity for the dashboard header.
type DoctorStats struct {
	TotalVerifications int     `json:"totalVerifications"`
	PendingRequests    int     `json:"pendingRequests"`
	AverageRating      float64 `json:"averageRating"`
}

// SupervisorStats aggregates a supervisor's activity.
type SupervisorStats struct {
	TotalVerifications int `json:"totalVerifications"`
	PendingRequests    int `json:"pendingRequests"`
	DoctorsSupervised  int `json:"doctorsSupervised"`
}

// DoctorDashboard is everything the doctor's landing page shows.
type DoctorDashboard struct {
	Doctor   *Doctor         `json:"doctor"`
	Progress *ProgressReport `json:"progress"`
	Stats    DoctorStats     `json:"stats"`
	Requests []*Request      `json:"requests"`
}

// SupervisorDashboard is everything the supervisor's landing page shows.
type SupervisorDashboard struct {
	Supervisor          *Supervisor     `json:"supervisor"`
	Stats               SupervisorStats `json:"stats"`
	PendingRequests     []*Request      `json:"pendingRequests"`
	RecentVerifications []*Verification `json:"recentVerifications"`
}

// RecentVerificationLimit is how many verifications the supervisor dashboard lists.
const RecentVerificationLimit = 5
