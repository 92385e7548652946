package complaint

import (
	"fmt"
	"strings"
)

// Record is a filed complaint as the backend returns it.
type Record struct {
	ComplaintID      string `json:"complaint_id"`
	Name             string `json:"name"`
	PhoneNumber      string `json:"phone_number"`
	Email            string `json:"email"`
	ComplaintDetails string `json:"complaint_details"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// FormatRecord renders a complaint for a chat reply.
func FormatRecord(r *Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Complaint %s\n", r.ComplaintID)
	fmt.Fprintf(&b, "- Name: %s\n", r.Name)
	fmt.Fprintf(&b, "- Phone: %s\n", r.PhoneNumber)
	fmt.Fprintf(&b, "- Email: %s\n", r.Email)
	fmt.Fprintf(&b, "- Details: %s", r.ComplaintDetails)
	if r.CreatedAt != "" {
		fmt.Fprintf(&b, "\n- Filed at: %s", r.CreatedAt)
	}
	return b.String()
}
