package mixes

// CreateMixInput is the payload for adding a mix to an existing receipt.
// An empty Status means pending.
type CreateMixInput struct {
	ReceiptID     uint
	Quantity      string
	Presentation  string
	NumberOfMix   *int
	Status        string
	DeliveredDate *string
}

// UpdateMixInput patches the supplied fields only.
type UpdateMixInput struct {
	Quantity      *string
	Presentation  *string
	NumberOfMix   *int
	Status        *string
	DeliveredDate *string
}

func (in UpdateMixInput) isEmpty() bool {
	return in.Quantity == nil && in.Presentation == nil && in.NumberOfMix == nil &&
		in.Status == nil && in.DeliveredDate == nil
}
