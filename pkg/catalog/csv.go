package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tantalor93/dnsrank/pkg/dnsbench"
)

// columns of the public-dns.info nameservers.csv
const (
	columnIP          = "ip_address"
	columnName        = "name"
	columnOrg         = "as_org"
	columnCountry     = "country_code"
	columnCity        = "city"
	columnReliability = "reliability"
)

type csvRow struct {
	index  map[string]int
	record []string
}

func (r csvRow) get(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

// parseCSV reads providers in the public-dns.info layout. IPv6 rows are attached to the IPv4 provider
// with the same name and organization, unmatched IPv6 rows are ignored.
func parseCSV(r io.Reader, minReliability float64) ([]*dnsbench.Provider, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index[columnIP]; !ok {
		return nil, fmt.Errorf("missing '%s' column", columnIP)
	}

	var providers []*dnsbench.Provider
	byName := make(map[string]*dnsbench.Provider)
	var ipv6Rows []csvRow

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := csvRow{index: index, record: record}

		if minReliability > 0 {
			reliability, err := strconv.ParseFloat(row.get(columnReliability), 64)
			if err != nil || reliability < minReliability {
				continue
			}
		}

		if strings.Contains(row.get(columnIP), ":") {
			ipv6Rows = append(ipv6Rows, row)
			continue
		}

		p := &dnsbench.Provider{
			Name:         row.get(columnName),
			Organization: row.get(columnOrg),
			Location:     location(row.get(columnCity), row.get(columnCountry)),
			IPv4:         row.get(columnIP),
		}
		providers = append(providers, p)
		if p.Name != "" {
			if _, ok := byName[pairKey(p.Name, p.Organization)]; !ok {
				byName[pairKey(p.Name, p.Organization)] = p
			}
		}
	}

	for _, row := range ipv6Rows {
		name := row.get(columnName)
		if name == "" {
			continue
		}
		if p, ok := byName[pairKey(name, row.get(columnOrg))]; ok && p.IPv6 == "" {
			p.IPv6 = row.get(columnIP)
		}
	}
	return providers, nil
}

func pairKey(name, org string) string {
	return strings.ToLower(name) + "|" + strings.ToLower(org)
}

func location(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	default:
		return country
	}
}
