package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"cargodelivery.ru/cargo"
)

func TestApplicationCreateError(t *testing.T) {

	t.Run("unique violation becomes a conflict", func(t *testing.T) {
		dup := &pq.Error{Code: "23505", Constraint: "idx_applications_order_id"}

		err := applicationCreateError(dup)
		assert.Equal(t, ApplicationExistsError, err)
		assert.Equal(t, cargo.ECONFLICT, cargo.ErrorCode(err))
	})

	t.Run("wrapped unique violation still maps", func(t *testing.T) {
		dup := fmt.Errorf("create application: %w", &pq.Error{Code: "23505"})
		assert.Equal(t, ApplicationExistsError, applicationCreateError(dup))
	})

	t.Run("other pg errors pass through", func(t *testing.T) {
		fk := &pq.Error{Code: "23503"}
		assert.Equal(t, error(fk), applicationCreateError(fk))
	})

	t.Run("non-pg errors pass through", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Equal(t, plain, applicationCreateError(plain))
	})
}
