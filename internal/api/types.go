package api

type createDeckRequest struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=1000"`
}

type addQuestionRequest struct {
	Question   string `json:"question" validate:"max=2000"`
	Answer     string `json:"answer" validate:"max=2000"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type updateQuestionRequest struct {
	Question   *string `json:"question,omitempty" validate:"omitempty,max=2000"`
	Answer     *string `json:"answer,omitempty" validate:"omitempty,max=2000"`
	Difficulty *string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

type markAnswerRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}
