package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskCustomerID(t *testing.T) {
	assert.Equal(t, "CUST****34", MaskCustomerID("CUST001234"))
	assert.Equal(t, "CUST******", MaskCustomerID("CUST12"))
	assert.Equal(t, "CUST******", MaskCustomerID(""))
}

func TestMaskIdentifierValue(t *testing.T) {
	// Customer-keyed fields mask directly
	assert.Equal(t, "CUST****34", maskIdentifierValue("customer_id", "CUST001234"))

	// Embedded identifiers in generic fields mask in place
	assert.Equal(t, "ticket for CUST****56 escalated",
		maskIdentifierValue("msg", "ticket for CUST003456 escalated"))

	// Values without identifiers pass through
	assert.Equal(t, "42 rows written", maskIdentifierValue("detail", "42 rows written"))
}
