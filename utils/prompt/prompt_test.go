package promptutils_test

import (
	"errors"
	"testing"

	promptutils "github.com/BerryBytes/sessionctl/utils/prompt"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
)

func TestHandlePromptErrorMapsInterrupt(t *testing.T) {
	p := &promptutils.RealPrompter{}

	assert.ErrorIs(t, p.HandlePromptError(promptui.ErrInterrupt), promptutils.ErrInterrupted)
}

func TestHandlePromptErrorWrapsOtherFailures(t *testing.T) {
	p := &promptutils.RealPrompter{}

	err := p.HandlePromptError(errors.New("terminal gone"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select an option")
	assert.Contains(t, err.Error(), "terminal gone")
}

func TestHandlePromptErrorPassesNil(t *testing.T) {
	p := &promptutils.RealPrompter{}

	assert.NoError(t, p.HandlePromptError(nil))
}
