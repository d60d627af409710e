package reminder

import (
	"machine-reminder/internal/model"
	"strings"
)

// Applicable returns the active templates whose machine type equals the
// machine's type, ignoring case. The input order is kept.
func Applicable(machine model.Machine, templates []model.ControlFormTemplate) []model.ControlFormTemplate {
	var matched []model.ControlFormTemplate
	for _, tmpl := range templates {
		if !tmpl.IsActive {
			continue
		}
		if strings.EqualFold(tmpl.MachineType, machine.MachineType) {
			matched = append(matched, tmpl)
		}
	}
	return matched
}
