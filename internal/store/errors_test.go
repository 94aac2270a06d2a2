package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &WriteError{Table: tableLoads, Rows: 4416, Err: cause}

	assert.Contains(t, err.Error(), "loadmeasurements")
	assert.Contains(t, err.Error(), "4416")
	assert.ErrorIs(t, err, cause)
}
