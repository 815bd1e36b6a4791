package responses

type ReportPreview struct {
	FilePath   string `json:"file_path"`
	ObjectName string `json:"object_name,omitempty"`
	Total      int    `json:"total"`
	Delivered  int    `json:"delivered"`
	Pending    int    `json:"pending"`
	Opened     bool   `json:"opened"`
}
