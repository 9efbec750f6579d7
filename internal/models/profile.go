// ABOUTME: Profile is the single free-text field map describing the vault owner
// ABOUTME: Serialized to JSON as a whole before encryption; replaced on every save
package models

// Profile maps field names (name, age, therapy_goal, ...) to free-text
// values. At most one profile exists per vault.
type Profile map[string]string

// ProfileField pairs a profile key with its display label.
type ProfileField struct {
	Key   string
	Label string
}

// ProfileFields is the canonical field list, in display order.
var ProfileFields = []ProfileField{
	{"name", "Full name"},
	{"age", "Age"},
	{"gender", "Gender"},
	{"marital_status", "Marital status"},
	{"children", "Children"},
	{"occupation", "Occupation"},
	{"therapy_goal", "Goal for therapy"},
	{"medical_history", "Medical history"},
	{"medication", "Current medications"},
	{"previous_therapy", "Previous therapy experience"},
	{"trauma_history", "Trauma history"},
	{"substance_use", "Substance use history"},
	{"family_history", "Family mental health history"},
	{"support_system", "Current support system"},
}
