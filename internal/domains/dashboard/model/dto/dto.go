package dto

// CountsResponse holds the dashboard counters for the caller's role. Fields outside the
// caller's scope are zero.
type CountsResponse struct {
	TotalUsers    int     `json:"total_users"`
	TotalListings int     `json:"total_listings"`
	TotalBookings int     `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
	Currency      string  `json:"currency"`
}
