package dto

import (
	"strings"

	"github.com/iho/payproc/internal/domain"
)

// PaymentBatchRequest lists the payments of one workflow transition.
type PaymentBatchRequest struct {
	PaymentIDs []string `json:"payment_ids"`
	// Group is only read by the process transition.
	Group string `json:"group,omitempty"`
}

// Normalize trims IDs and validates the batch.
func (r *PaymentBatchRequest) Normalize() error {
	ids := make([]string, 0, len(r.PaymentIDs))
	for _, id := range r.PaymentIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	r.PaymentIDs = ids
	r.Group = strings.TrimSpace(r.Group)

	return domain.ValidateBatch(r.PaymentIDs)
}
