package domain

// Verification statuses reported on Result.Status.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Delivery modes reported on Result.DeliveredVia.
const (
	ViaEmail   = "email"
	ViaSMS     = "sms"
	ViaConsole = "console"
)

// Result is the outcome of every verification operation. Operations never return a Go error;
// Err keeps the sentinel behind a failure so the transport layer can choose a status code.
type Result struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	Status       string  `json:"status,omitempty"`
	Role         Role    `json:"role,omitempty"`
	Channel      Channel `json:"channel,omitempty"`
	Delivered    bool    `json:"delivered"`
	DeliveredVia string  `json:"delivered_via,omitempty"`
	Code         string  `json:"code,omitempty"`
	Affected     *int    `json:"affected,omitempty"`
	Error        string  `json:"error,omitempty"`
	Err          error   `json:"-"`
}
