package handlers

type methodDTO struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type slotDTO struct {
	ID        int64  `json:"id"`
	Method    string `json:"method"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type createReservationRequest struct {
	Method string `json:"method"`
	Date   string `json:"date"`
	SlotID int64  `json:"slot_id"`
}

type reservationDTO struct {
	ID        int64  `json:"id"`
	SlotID    int64  `json:"slot_id"`
	Method    string `json:"method"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CreatedAt string `json:"created_at"`
}
