package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type QuestionResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type UploadResponse struct {
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
