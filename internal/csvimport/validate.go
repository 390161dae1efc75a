package csvimport

import (
	"fmt"
	"strings"
)

// DealTypes are the only accepted values for the deal_type column.
var DealTypes = []string{"buyer", "seller", "buyer_and_seller", "renter", "landlord"}

// StatusRef is the caller-supplied reference entry for one pipeline
// status, keyed case-insensitively by name.
type StatusRef struct {
	ID             uint
	LifecycleStage string
}

// ValidateDealRow checks one normalized row against the required-field
// rules and the known pipeline statuses. All rules are checked
// independently; errors accumulate rather than short-circuit. Lead
// source existence is the importer's job, not the row validator's.
func ValidateDealRow(rec map[string]string, validStatuses map[string]StatusRef) (bool, []string) {
	var errs []string

	if strings.TrimSpace(rec["client_name"]) == "" {
		errs = append(errs, "client_name is required")
	}
	if strings.TrimSpace(rec["lead_source_name"]) == "" {
		errs = append(errs, "lead_source_name is required")
	}

	dealType := strings.TrimSpace(rec["deal_type"])
	if !isDealType(dealType) {
		errs = append(errs, fmt.Sprintf("deal_type must be one of: %s", strings.Join(DealTypes, ", ")))
	}

	status := strings.TrimSpace(rec["pipeline_status"])
	if status == "" {
		errs = append(errs, "pipeline_status is required")
	} else if len(validStatuses) > 0 {
		if _, ok := validStatuses[strings.ToLower(status)]; !ok {
			errs = append(errs, fmt.Sprintf("pipeline_status %q is not a valid status", status))
		}
	}

	return len(errs) == 0, errs
}

func isDealType(s string) bool {
	for _, t := range DealTypes {
		if s == t {
			return true
		}
	}
	return false
}
