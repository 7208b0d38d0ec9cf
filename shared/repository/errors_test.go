package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"afristay/shared/repository"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstraintErrors(t *testing.T) {
	t.Parallel()

	unique := fmt.Errorf("failed to insert data (profiles): %w", &pq.Error{Code: "23505"})
	foreign := &pq.Error{Code: "23503"}

	assert.True(t, repository.IsUniqueViolation(unique))
	assert.False(t, repository.IsForeignKeyViolation(unique))
	assert.True(t, repository.IsForeignKeyViolation(foreign))
	assert.False(t, repository.IsUniqueViolation(errors.New("connection reset")))
	assert.False(t, repository.IsUniqueViolation(nil))
}
