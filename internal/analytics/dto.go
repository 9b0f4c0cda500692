package analytics

import "time"

// TopCourse names the most enrolled catalog entry.
type TopCourse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Enrolled int    `json:"enrolled"`
}

// Dashboard is the admin overview computed at GeneratedAt.
type Dashboard struct {
	TotalUsers         int64      `json:"total_users"`
	ActiveUsers        int64      `json:"active_users"`
	TotalRevenue       int64      `json:"total_revenue"`
	TotalPurchases     int        `json:"total_purchases"`
	CompletedPurchases int        `json:"completed_purchases"`
	PendingRefunds     int        `json:"pending_refunds"`
	TopCourse          *TopCourse `json:"top_course"`
	GeneratedAt        time.Time  `json:"generated_at"`
}
