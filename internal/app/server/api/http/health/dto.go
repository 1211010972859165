package health

// Output represents the output for health check endpoint
type Output struct {
	Body Response
}

// Response represents the health check response
type Response struct {
	Status string            `json:"status" example:"OK" doc:"Health status of the service"`
	Checks map[string]string `json:"checks,omitempty" doc:"Result of each dependency check"`
}
