package responses

type Changelog struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}
