package cli

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errAborted is returned when the user interrupts a prompt.
var errAborted = errors.New("aborted")

type prompter interface {
	Input(message, help, def string) (string, error)
	Multiline(message, help string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(message, help, def string) (string, error) {
	var out string
	prompt := &survey.Input{
		Message: message,
		Help:    help,
		Default: def,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Multiline(message, help string) (string, error) {
	var out string
	prompt := &survey.Multiline{
		Message: message,
		Help:    help,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

// newPrompter returns the prompt implementation.
var newPrompter = func() prompter {
	return surveyPrompter{}
}
