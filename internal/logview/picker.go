package logview

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// SurveyPicker asks the user to choose a log file from a terminal menu.
func SurveyPicker(entries []Entry) (int, error) {
	options := make([]string, len(entries))
	for i, e := range entries {
		options[i] = fmt.Sprintf("%d. %s (%s)", i+1, e.RelPath, FormatSize(e.Size))
	}

	var idx int
	prompt := &survey.Select{
		Message:  "Select a log file:",
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &idx); err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}
	return idx + 1, nil
}
