package models

import (
	"testing"

	apierrors "authflow/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIResponseResult(t *testing.T) {
	t.Run("should return the payload of an accepted response", func(t *testing.T) {
		data := "sent"
		response := APIResponse[string]{Success: true, Data: &data}

		result, err := response.Result()

		require.NoError(t, err)
		assert.Equal(t, "sent", result)
	})

	t.Run("should carry the server message on a rejected response", func(t *testing.T) {
		response := APIResponse[string]{Success: false, Message: "Invalid code"}

		_, err := response.Result()

		var businessErr *apierrors.BusinessError
		require.ErrorAs(t, err, &businessErr)
		assert.Equal(t, "Invalid code", businessErr.Message)
	})

	t.Run("should fall back to a generic message when the server gives none", func(t *testing.T) {
		_, err := APIResponse[string]{}.Result()

		var businessErr *apierrors.BusinessError
		require.ErrorAs(t, err, &businessErr)
		assert.Equal(t, apierrors.ErrRequestRejected, businessErr.Message)
	})

	t.Run("should reject an accepted response without a payload", func(t *testing.T) {
		_, err := APIResponse[MFAState]{Success: true}.Result()

		var businessErr *apierrors.BusinessError
		require.ErrorAs(t, err, &businessErr)
		assert.Equal(t, apierrors.ErrEmptyPayload, businessErr.Message)
	})
}
