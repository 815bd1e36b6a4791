package board

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"sisregip-service/internal/pkg/apiclient"
)

const (
	StatusDelivered = "delivered"
	StatusPending   = "pending"
)

// Status derives the delivery status from ENTREGA alone.
func Status(protocol apiclient.Protocol) string {
	if strings.TrimSpace(protocol.DeliveredAt) != "" {
		return StatusDelivered
	}
	return StatusPending
}

// Chart is the delivered/pending split drawn next to the list. Revision
// changes every time the chart is rebuilt.
type Chart struct {
	Delivered int
	Pending   int
	Total     int
	Revision  int
}

func Partition(protocols []apiclient.Protocol) Chart {
	chart := Chart{Total: len(protocols)}
	for _, protocol := range protocols {
		if Status(protocol) == StatusDelivered {
			chart.Delivered++
		} else {
			chart.Pending++
		}
	}
	return chart
}

// ExtractYear reads the year of a DD/MM/YYYY date. Only four digit years
// after 2000 count.
func ExtractYear(date string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(date), "/")
	if len(parts) != 3 || len(parts[2]) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year <= 2000 {
		return 0, false
	}
	return year, true
}

// AvailableYears lists the distinct protocol years, newest first, falling
// back to the current year.
func AvailableYears(protocols []apiclient.Protocol, now time.Time) []int {
	seen := make(map[int]bool)
	var years []int
	for _, protocol := range protocols {
		year, ok := ExtractYear(protocol.Date)
		if !ok || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}
	if len(years) == 0 {
		return []int{now.Year()}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Filter keeps the protocols whose name or code contains term, ignoring case.
func Filter(protocols []apiclient.Protocol, term string) []apiclient.Protocol {
	term = strings.ToLower(term)
	filtered := make([]apiclient.Protocol, 0, len(protocols))
	for _, protocol := range protocols {
		if term == "" ||
			strings.Contains(strings.ToLower(protocol.Name), term) ||
			strings.Contains(strings.ToLower(protocol.Prot), term) {
			filtered = append(filtered, protocol)
		}
	}
	return filtered
}
