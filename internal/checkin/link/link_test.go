package link

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "checkin/pkg/domain-errors"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("test-key")

	token, err := svc.Generate("sub-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	submissionID, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", submissionID)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService("test-key")

	token, err := svc.Generate("sub-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateWrongKey(t *testing.T) {
	token, err := NewService("key-a").Generate("sub-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = NewService("key-b").Validate(token)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

func TestValidateGarbage(t *testing.T) {
	svc := NewService("test-key")
	_, err := svc.Validate("not.a.token")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}
