package secretaria

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sisregip-service/internal/pkg/apiclient"
)

const maxBuckets = 12

var monthLabels = [12]string{"JAN", "FEV", "MAR", "ABR", "MAI", "JUN", "JUL", "AGO", "SET", "OUT", "NOV", "DEZ"}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape neutralises the markup characters of a stored free-text value.
func Escape(value string) string {
	return htmlEscaper.Replace(value)
}

type Bucket struct {
	Key   string
	Label string
	Count int
}

// MonthKey returns "YYYY-MM" for a D/M/YYYY or YYYY-M[-D] date. Day and
// month may be unpadded; any time part after a space is ignored.
func MonthKey(date string) (string, bool) {
	date = strings.TrimSpace(date)
	if i := strings.IndexByte(date, ' '); i >= 0 {
		date = date[:i]
	}

	var year, month string
	switch {
	case strings.Contains(date, "/"):
		parts := strings.Split(date, "/")
		if len(parts) != 3 {
			return "", false
		}
		year, month = parts[2], parts[1]
	case strings.Contains(date, "-"):
		parts := strings.Split(date, "-")
		if len(parts) < 2 {
			return "", false
		}
		year, month = parts[0], parts[1]
	default:
		return "", false
	}

	if len(year) != 4 {
		return "", false
	}
	y, err := strconv.Atoi(year)
	if err != nil || y <= 0 {
		return "", false
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d", y, m), true
}

func bucketLabel(key string) string {
	month, _ := strconv.Atoi(key[5:7])
	return monthLabels[month-1] + "/" + key[2:4]
}

// Buckets counts records per month and keeps the 12 most recent months in
// ascending order. Undated records are left out.
func Buckets(records []apiclient.SecretaryRecord) []Bucket {
	counts := make(map[string]int)
	for _, record := range records {
		if key, ok := MonthKey(record.DataProt); ok {
			counts[key]++
		}
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > maxBuckets {
		keys = keys[len(keys)-maxBuckets:]
	}

	buckets := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, Bucket{Key: key, Label: bucketLabel(key), Count: counts[key]})
	}
	return buckets
}

// Filter matches term against nome, prontuario and protocolo, ignoring case.
func Filter(records []apiclient.SecretaryRecord, term string) []apiclient.SecretaryRecord {
	term = strings.ToLower(term)
	filtered := make([]apiclient.SecretaryRecord, 0, len(records))
	for _, record := range records {
		if term == "" ||
			strings.Contains(strings.ToLower(record.Nome), term) ||
			strings.Contains(strings.ToLower(record.Prontuario), term) ||
			strings.Contains(strings.ToLower(record.Protocolo), term) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// Row is a table line with every cell escaped.
func Row(record apiclient.SecretaryRecord) []string {
	return []string{
		Escape(record.Protocolo),
		Escape(record.Prontuario),
		Escape(record.Nome),
		Escape(record.DataProt),
		Escape(record.Finalidade),
		Escape(record.Alta),
		Escape(record.Obs),
	}
}
