package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"imkit/internal/services/ui"
)

func TestOpenProfile_Forwards(t *testing.T) {
	var gotUser string
	var gotCtx any
	s := ui.New(func(userID string, hostContext any) {
		gotUser, gotCtx = userID, hostContext
	}, nil)

	assert.True(t, s.OpenProfile("u2", "screen-1"))
	assert.Equal(t, "u2", gotUser)
	assert.Equal(t, "screen-1", gotCtx)
}

func TestOpenProfile_NoHandler(t *testing.T) {
	assert.False(t, ui.New(nil, nil).OpenProfile("u2", nil))
}
