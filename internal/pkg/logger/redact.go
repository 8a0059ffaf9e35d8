package logger

import (
	"regexp"
	"strings"
)

var customerIDRegex = regexp.MustCompile(`CUST\d{6}`)

// maskIdentifierValue masks customer identifiers in log field values.
// Fields whose key names a customer id are masked directly; other fields
// have any embedded identifiers masked in place.
func maskIdentifierValue(key, val string) string {
	key = strings.ToLower(key)
	if strings.Contains(key, "customer_id") || strings.Contains(key, "customer") {
		return MaskCustomerID(val)
	}
	return customerIDRegex.ReplaceAllStringFunc(val, MaskCustomerID)
}

// MaskCustomerID masks a customer identifier for safe logging.
// "CUST001234" → "CUST****34"
// Identifiers too short to carry a numeric suffix are fully masked.
func MaskCustomerID(id string) string {
	if len(id) <= 6 {
		return "CUST******"
	}
	return id[:4] + "****" + id[len(id)-2:]
}
