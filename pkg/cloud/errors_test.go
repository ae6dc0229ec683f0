package cloud

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCloudError(cause, "Error fetching COE cluster list")

	assert.EqualError(t, err, "Error fetching COE cluster list: connection refused")
	assert.ErrorIs(t, err, cause)

	bare := NewCloudError(nil, "Error fetching COE cluster %s", "web")
	assert.EqualError(t, bare, "Error fetching COE cluster web")
	assert.Nil(t, errors.Unwrap(bare))
}

func TestIsNotFound(t *testing.T) {
	err := newNotFoundError("COE cluster %s not found.", "web")
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "COE cluster web not found.")

	wrapped := errors.Wrap(err, "while updating")
	assert.True(t, IsNotFound(wrapped))

	assert.False(t, IsNotFound(errors.New("boom")))
	assert.False(t, IsNotFound(nil))
}

func TestIsMissingField(t *testing.T) {
	err := &MissingFieldError{Resource: "coe_cluster", Field: "uuid"}
	assert.True(t, IsMissingField(err))

	// Typical shape in the wild: the schema violation behind an operation
	// message.
	wrapped := NewCloudError(err, "Error fetching Magnum services list")
	assert.True(t, IsMissingField(wrapped))

	var missing *MissingFieldError
	require.ErrorAs(t, wrapped, &missing)
	assert.Equal(t, "uuid", missing.Field)

	assert.False(t, IsMissingField(errors.New("boom")))
}
