package presence

type CheckInRequest struct {
	Notes *string `json:"notes"`
}

type CheckOutRequest struct {
	Notes *string `json:"notes"`
}

type PresenceResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	PresenceDate string  `json:"presence_date"`
	CheckIn      string  `json:"check_in"`
	CheckOut     *string `json:"check_out,omitempty"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
}
