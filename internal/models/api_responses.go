package models

// GroupsResponse is returned by the grouping endpoints.
type GroupsResponse struct {
	Groups      []Group `json:"groups"`
	Summary     Summary `json:"summary"`
	InputCount  int     `json:"input_count,omitempty"`
	UniqueCount int     `json:"unique_count,omitempty"`
	Cached      bool    `json:"cached"`
}

// ImportResponse reports how many records were stored for a project.
type ImportResponse struct {
	ProjectID string `json:"project_id"`
	Inserted  int    `json:"inserted"`
}

// HealthResponse contains the service health status.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}
