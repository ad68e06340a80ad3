package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrCartNotFound       = errors.New("cart not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrPromotionNotFound  = errors.New("promotion not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrConflict           = errors.New("record was modified concurrently")
	ErrProtected          = errors.New("record is referenced by other records")
	ErrDuplicate          = errors.New("record already exists")
	ErrOutOfRange         = errors.New("value out of range")
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

func pgError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error

	if errors.As(err, &pqErr) {
		return pqErr, true
	}

	return nil, false
}

func hasPgCode(err error, codes ...string) bool {
	pqErr, ok := pgError(err)
	if !ok {
		return false
	}

	for _, code := range codes {
		if string(pqErr.Code) == code {
			return true
		}
	}

	return false
}

// violatedConstraint returns the name of the foreign key that rejected the write.
func violatedConstraint(err error) string {
	pqErr, ok := pgError(err)
	if !ok || string(pqErr.Code) != pgForeignKeyViolation {
		return ""
	}

	return pqErr.Constraint
}
