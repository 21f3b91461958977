package usecase

type CreateLeadInput struct {
	Name    string   `json:"nome" validate:"required,max=200"`
	Channel string   `json:"canal" validate:"omitempty,max=50"`
	Phone   *string  `json:"telefone" validate:"omitempty,max=40"`
	Email   *string  `json:"email" validate:"omitempty,email"`
	Origin  string   `json:"origem" validate:"omitempty,max=100"`
	Tags    []string `json:"tags" validate:"omitempty,max=50,dive,required,max=50"`
}

type RecordInteractionInput struct {
	Type string `json:"tipo" validate:"required,max=50"`
	Note string `json:"note" validate:"max=2000"`
}
