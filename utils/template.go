// utils/template.go
package utils

import "strings"

// Token names every reminder template may use. The scheduler/dispatcher
// always supplies this full vocabulary.
const (
	TokenFirstName       = "first_name"
	TokenLastName        = "last_name"
	TokenVehicleReg      = "vehicle_reg"
	TokenDueDate         = "due_date"
	TokenGarageName      = "garage_name"
	TokenGaragePhone     = "garage_phone"
	TokenUnsubscribeLink = "unsubscribe_link"
)

// RenderTemplate replaces every {key} occurrence with its value from the
// token map. Missing values render as empty string; placeholders with no
// matching key are left verbatim. Pure string work, no I/O.
func RenderTemplate(template string, tokens map[string]string) string {
	rendered := template
	for key, value := range tokens {
		rendered = strings.ReplaceAll(rendered, "{"+key+"}", value)
	}
	return rendered
}
