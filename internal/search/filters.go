// Package search provides the neighborhood gazetteer over Meilisearch.
package search

import "fmt"

// FilterDistrict renders a Meilisearch filter expression for one district.
func FilterDistrict(districtID int) string {
	return fmt.Sprintf("district_id = %d", districtID)
}

// FilterQuarter renders a Meilisearch filter expression for one quarter.
func FilterQuarter(quarter string) string {
	return fmt.Sprintf("quarter = %q", quarter)
}
