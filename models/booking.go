package models

import "time"

// Booking statuses. A booking is removed (not status-flipped) on cancellation
// by either party; the cancelled status exists for detailer-side soft closes.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a customer's appointment with a detailer. Service and
// Price are snapshotted by value at creation so catalog edits never cascade
// into existing bookings.
type Booking struct {
	ID          string    `bson:"id" json:"id"`
	CustomerID  string    `bson:"customerId" json:"customerId"`
	DetailerID  string    `bson:"detailerId" json:"detailerId"`
	Service     string    `bson:"service" json:"service"`
	Price       float64   `bson:"price" json:"price"`
	BookingTime time.Time `bson:"bookingTime" json:"bookingTime"`
	Status      string    `bson:"status" json:"status"`
	SlotID      string    `bson:"slotId,omitempty" json:"slotId,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Active reports whether the booking still holds its slot claim.
func (b *Booking) Active() bool {
	return b.Status != BookingStatusCancelled
}

// BookSlotRequest is the payload for the slot-booking endpoint.
type BookSlotRequest struct {
	DetailerID string `json:"detailerId" binding:"required"`
	SlotID     string `json:"slotId" binding:"required"`
	Service    string `json:"service" binding:"required"`
}

// UpdateBookingStatusRequest is the payload for status transitions.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
