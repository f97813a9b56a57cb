package textfield

import (
	"github.com/comalice/reactorx"
	"github.com/comalice/reactorx/internal/setting"
	"github.com/comalice/reactorx/internal/theme"
)

// Action is a user intent on the text-field screen.
type Action interface {
	isAction()
}

// InputField carries the current contents of the text field.
type InputField struct {
	Text string
}

// DidTapSettingButton requests the settings screen.
type DidTapSettingButton struct{}

func (InputField) isAction()          {}
func (DidTapSettingButton) isAction() {}

// Mutation is an atomic state change on the text-field screen.
type Mutation interface {
	isMutation()
}

type (
	SetBackgroundColor struct {
		Color *theme.Color
	}
	SetCapitalizedString struct {
		Value string
	}
	SetLengthOfString struct {
		Value int
	}
	ShowAlertMessage struct {
		Message string
	}
	// PushChildController hands a ready-to-present settings screen to the view layer.
	PushChildController struct {
		Screen *setting.Screen
	}
)

func (SetBackgroundColor) isMutation()   {}
func (SetCapitalizedString) isMutation() {}
func (SetLengthOfString) isMutation()    {}
func (ShowAlertMessage) isMutation()     {}
func (PushChildController) isMutation()  {}

// State is the text-field screen snapshot. Nil pointers mean "not set".
// Pointed-to values are never modified after a snapshot is published.
type State struct {
	BackgroundColor   *theme.Color
	LengthOfString    *int
	CapitalizedString *string

	AlertMessage  reactorx.Pulse[string]
	SettingScreen reactorx.Pulse[*setting.Screen]
}
