package health

type statusBody struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message" example:"Server is running"`
}

type statusOutput struct {
	Body statusBody
}
