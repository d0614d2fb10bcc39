package dto

type SubmitRSVPRequest struct {
	GuestName   string   `json:"guestName" validate:"required,max=255"`
	GuestEmail  string   `json:"guestEmail" validate:"omitempty,email"`
	Status      string   `json:"status" validate:"required,oneof=attending not_attending maybe"`
	PlusOnes    int      `json:"plusOnes" validate:"min=0,max=10"`
	MenuChoices []string `json:"menuChoices"`
	Note        string   `json:"note" validate:"max=2000"`
}
