package promptutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BerryBytes/sessionctl/models"
	"github.com/manifoldco/promptui"
)

// ErrInterrupted reports that the operator cancelled a prompt.
var ErrInterrupted = errors.New("operation interrupted")

// Prompter is the selection collaborator the resolution pipeline hands its
// ranked candidates to.
type Prompter interface {
	SelectRole(label string, choices []models.RoleChoice) (models.RoleChoice, error)
	PromptForSelection(label string, items []string) (string, error)
	PromptForConfirmation(prompt string) bool
}

type RealPrompter struct{}

func NewPrompt() Prompter {
	return &RealPrompter{}
}

func (p *RealPrompter) HandlePromptError(err error) error {
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			fmt.Println("\nReceived termination signal. Exiting.")
			return ErrInterrupted
		}
		return fmt.Errorf("failed to select an option: %w", err)
	}
	return nil
}

// SelectRole presents the candidates in their given (already ranked) order
// with a case-insensitive substring searcher.
func (p *RealPrompter) SelectRole(label string, choices []models.RoleChoice) (models.RoleChoice, error) {
	items := make([]string, 0, len(choices))
	for _, choice := range choices {
		items = append(items, choice.Label())
	}

	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  12,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
		StartInSearchMode: false,
	}
	index, _, err := prompt.Run()
	if err := p.HandlePromptError(err); err != nil {
		return models.RoleChoice{}, err
	}
	return choices[index], nil
}

func (p *RealPrompter) PromptForSelection(label string, items []string) (string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}
	_, selected, err := prompt.Run()
	if err := p.HandlePromptError(err); err != nil {
		return "", err
	}
	return selected, nil
}

func (p *RealPrompter) PromptForConfirmation(prompt string) bool {
	promptInstance := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	result, err := promptInstance.Run()
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(result), "y")
}
