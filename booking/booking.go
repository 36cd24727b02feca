package booking

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID         string `json:"id"`
	Service    string `json:"service"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"`
	Status     string `json:"status"` // confirmed, cancelled
	OwnerEmail string `json:"ownerEmail"`
}

// BookingRequest carries the client-supplied fields of a new booking.
// The id, status and owner are set by the service, never by the caller.
type BookingRequest struct {
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// BookingUpdate is a partial update: nil fields are left untouched.
// Owner and status cannot be changed through an update.
type BookingUpdate struct {
	Service *string `json:"service"`
	Date    *string `json:"date"`
	Time    *string `json:"time"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
}
