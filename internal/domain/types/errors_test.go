package types_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"imkit/internal/domain/types"
)

func TestErrorHelpers(t *testing.T) {
	hostErr := errors.New("quota exceeded")
	denied := fmt.Errorf("open session: %w", types.AuthorizationDenied(hostErr))

	assert.Equal(t, types.ErrCodeDenied, types.ErrorCode(denied))
	assert.True(t, types.IsDenied(denied))
	assert.ErrorIs(t, denied, hostErr)
	assert.Contains(t, denied.Error(), "quota exceeded")

	violation := types.HostContractViolation("resolved twice")
	assert.True(t, types.IsDenied(violation))
	assert.False(t, types.IsInvalidDescriptor(violation))

	assert.Equal(t, "", types.ErrorCode(errors.New("plain")))
	assert.Equal(t, "", types.ErrorCode(nil))
	assert.False(t, types.IsDenied(nil))
}
