package requests

type ListPDFs struct {
	FolderPath string `json:"folder_path"`
	Operator   string `json:"OPERADOR"`
}

type MergePDFs struct {
	FolderPath   string   `json:"folder_path"`
	FilesToMerge []string `json:"files_to_merge"`
	RemoveBlank  bool     `json:"remove_blank"`
	Operator     string   `json:"OPERADOR"`
}
