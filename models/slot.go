package models

import "time"

// Slot is a detailer's availability window. A nil Claim means the slot is
// free; a non-nil Claim records who holds it and since when. The claim is the
// single source of truth for availability, so there is no separate boolean to
// drift out of sync.
type Slot struct {
	ID         string     `bson:"id" json:"id"`
	DetailerID string     `bson:"detailerId" json:"detailerId"`
	StartTime  time.Time  `bson:"startTime" json:"startTime"`
	EndTime    time.Time  `bson:"endTime" json:"endTime"`
	Claim      *SlotClaim `bson:"claim,omitempty" json:"claim,omitempty"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
}

// SlotClaim records the holder of a claimed slot.
type SlotClaim struct {
	By string    `bson:"by" json:"by"`
	At time.Time `bson:"at" json:"at"`
}

// Booked reports whether the slot is currently claimed.
func (s *Slot) Booked() bool {
	return s.Claim != nil
}

// BookedBy returns the claiming customer's ID, or "" for a free slot.
func (s *Slot) BookedBy() string {
	if s.Claim == nil {
		return ""
	}
	return s.Claim.By
}

// SlotInput defines the payload for publishing an availability window.
type SlotInput struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

// CreateSlotsRequest is the batch payload for the slot-publishing endpoint.
type CreateSlotsRequest struct {
	Slots []SlotInput `json:"slots" binding:"required,min=1,dive"`
}
