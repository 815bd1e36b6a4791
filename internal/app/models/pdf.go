package models

// PDFAnalysis is the per-file result of the pre-merge scan. Page numbers are
// 1-based.
type PDFAnalysis struct {
	Path       string
	PageCount  int
	BlankPages []int
}

// KeptPages lists the pages that survive blank removal, in order.
func (a PDFAnalysis) KeptPages() []int {
	blank := make(map[int]struct{}, len(a.BlankPages))
	for _, page := range a.BlankPages {
		blank[page] = struct{}{}
	}
	kept := make([]int, 0, a.PageCount)
	for page := 1; page <= a.PageCount; page++ {
		if _, ok := blank[page]; !ok {
			kept = append(kept, page)
		}
	}
	return kept
}

// PDFSelection is one input of a merge: a file and the pages taken from it.
type PDFSelection struct {
	Path  string
	Pages []int
}
