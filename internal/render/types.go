package render

import "github.com/ppanel/ppadmin/internal/model1"

const (
	// Display values
	MissingValue = model1.MissingValue
	NAValue      = model1.NAValue
	Unlimited    = "Unlimited"
	On           = "ON"
	Off          = "OFF"

	// DateFormat renders timestamps.
	DateFormat = "2006-01-02 15:04:05"

	contentWidth     = 48
	descriptionWidth = 40
)
