package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// PromptForCompany prompts the user for a company name. Free text is
// accepted: resolution to a ticker happens inside the analysis itself.
func PromptForCompany() (string, error) {
	var company string
	prompt := &survey.Input{
		Message: "Enter a company name (e.g., Microsoft, Reliance Industries):",
		Help:    "Any listed company worldwide. The name is resolved to its primary ticker automatically.",
	}

	err := survey.AskOne(prompt, &company, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if len(str) == 0 {
			return fmt.Errorf("company name cannot be empty")
		}
		if len(str) > 100 {
			return fmt.Errorf("company name too long (max 100 characters)")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(company), nil
}

// PromptForAnother asks whether to run another analysis.
func PromptForAnother() (bool, error) {
	var again bool
	prompt := &survey.Confirm{
		Message: "Analyze another company?",
		Default: false,
	}

	if err := survey.AskOne(prompt, &again); err != nil {
		return false, err
	}
	return again, nil
}
