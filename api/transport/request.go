package transport

type GenerateRequest struct {
	Topic string `json:"topic"`
}

type SaveTaskRequest struct {
	Title string `json:"title"`
	Topic string `json:"topic"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}
