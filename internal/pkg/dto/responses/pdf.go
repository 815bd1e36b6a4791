package responses

// ListPDFs keeps files at the top level next to success, the shape the merge
// view reads.
type ListPDFs struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Files   []string `json:"files"`
}

type MergePDFs struct {
	OutputPath        string   `json:"output_path"`
	ObjectName        string   `json:"object_name,omitempty"`
	Pages             int      `json:"pages"`
	BlankPagesRemoved int      `json:"blank_pages_removed"`
	SkippedFiles      []string `json:"skipped_files,omitempty"`
}
