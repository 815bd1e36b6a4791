package models

import "time"

type ReportScope struct {
	FilterType  string
	FilterValue string
	Start       *time.Time
	End         *time.Time
	Label       string
}

type ReportSummary struct {
	Total     int
	Delivered int
	Pending   int
}

func SummarizeProtocols(protocols []Protocol) ReportSummary {
	summary := ReportSummary{Total: len(protocols)}
	for _, protocol := range protocols {
		if protocol.Status() == ProtocolStatusDelivered {
			summary.Delivered++
		}
	}
	summary.Pending = summary.Total - summary.Delivered
	return summary
}
