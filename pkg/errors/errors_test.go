package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormat(t *testing.T) {
	err := New(ErrCodeInvalidParam, "bad cutoff")
	assert.Equal(t, "[COMMON_002] bad cutoff", err.Error())

	withDetail := err.WithDetail("k=-5")
	assert.Equal(t, "[COMMON_002] bad cutoff: k=-5", withDetail.Error())
	// The original is untouched.
	assert.Empty(t, err.Detail)
}

func TestWrapPreservesChain(t *testing.T) {
	cause := stderrors.New("disk failure")
	err := Wrap(cause, ErrCodeMissingRequiredSource, "export not readable")

	require.NotNil(t, err)
	assert.Equal(t, ErrCodeMissingRequiredSource, err.Code)
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, cause, err.Unwrap())
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "never happens"))
}

func TestWrapUnknownCodePreservesOriginal(t *testing.T) {
	inner := New(ErrCodeProfileNotFound, "unknown profile")
	outer := Wrap(fmt.Errorf("run failed: %w", inner), CodeUnknown, "run failed")
	assert.Equal(t, ErrCodeProfileNotFound, outer.Code)
}

func TestIsCode(t *testing.T) {
	err := MissingOptionalSource("no classification file")
	wrapped := fmt.Errorf("loading: %w", err)

	assert.True(t, IsCode(wrapped, ErrCodeMissingOptionalSource))
	assert.False(t, IsCode(wrapped, ErrCodeMissingRequiredSource))
	assert.False(t, IsCode(nil, ErrCodeInternal))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeInvalidTiers, GetCode(New(ErrCodeInvalidTiers, "bad tiers")))
}

func TestFactories(t *testing.T) {
	tests := []struct {
		err  *AppError
		code ErrorCode
	}{
		{MissingRequiredSource("m"), ErrCodeMissingRequiredSource},
		{MissingOptionalSource("m"), ErrCodeMissingOptionalSource},
		{InvalidParam("m"), ErrCodeInvalidParam},
		{NotFound("m"), ErrCodeNotFound},
		{Internal("m"), ErrCodeInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code)
		assert.NotEmpty(t, tt.err.Stack)
	}
}

func TestNilReceiverHelpers(t *testing.T) {
	var err *AppError
	assert.Nil(t, err.WithDetail("x"))
	assert.Nil(t, err.WithCause(stderrors.New("y")))
}
