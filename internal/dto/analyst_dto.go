package dto

type AskAnalystRequest struct {
	Question string `json:"question" validate:"required,min=1,max=2000"`
}

type AskAnalystResponse struct {
	Answer string `json:"answer"`
	// Fallback is true when the analyst service was unreachable and Answer
	// carries the canned apology instead of a model reply.
	Fallback bool `json:"fallback"`
}
