// ABOUTME: Prompt assembly for therapy sessions and clinical note generation
// ABOUTME: Per-approach system prompts plus context built from vault records
package llm

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"mindvault/internal/models"
)

// Context caps keep prompts bounded regardless of vault size.
const (
	maxContextEntries = 10
	maxContextNotes   = 5
	maxNotesForNotes  = 3
)

// approachPrompts maps each modality to its system prompt fragment.
var approachPrompts = map[models.Approach]string{
	models.ApproachFreudian: `You are a Freudian psychoanalyst therapist. Focus on unconscious processes,
dream analysis, and childhood experiences. Use concepts like id, ego, superego, defense mechanisms,
and psychosexual development. Interpret statements in terms of repressed desires and conflicts.
Look for patterns related to early childhood development and parental relationships.`,

	models.ApproachJungian: `You are a Jungian analytical psychologist therapist. Focus on archetypes,
the collective unconscious, and the process of individuation. Look for symbolic content and meaning
in dreams and experiences. Use concepts like shadow, anima/animus, persona, and the Self.
Help the person integrate unconscious contents to achieve wholeness.`,

	models.ApproachCBT: `You are a CBT therapist. Focus on identifying and changing
unhelpful thinking patterns and behaviors. Use techniques like cognitive restructuring, behavioral
activation, and exposure. Look for cognitive distortions like catastrophizing, black-and-white thinking,
and overgeneralization. Help develop more balanced thoughts and adaptive behaviors.`,

	models.ApproachHumanistic: `You are a humanistic therapist. Focus on the person's innate capacity for growth
and self-actualization. Create a warm, empathetic, and non-judgmental environment. Use reflective
listening and unconditional positive regard. Encourage authentic expression and help the person discover
their own solutions and meaning.`,

	models.ApproachExistential: `You are an existential therapist. Focus on questions of existence, meaning, freedom,
and responsibility. Help the person confront existential givens like mortality, isolation, freedom,
and meaninglessness. Explore how they create meaning in their lives and take responsibility for their choices.`,

	models.ApproachPsychodynamic: `You are a psychodynamic therapist. Focus on unconscious processes, past experiences,
and their impact on current behavior. Explore patterns in relationships and emotional responses.
Use concepts like transference, attachment styles, and defense mechanisms. Help the person gain insight
into recurring patterns and develop new ways of relating.`,
}

// therapistInstructions is appended to every session system prompt.
const therapistInstructions = `

As an AI therapist:
1. Maintain strict confidentiality and ethical standards
2. Do not give prescriptive medical advice
3. Recognize when issues might require referral to a human professional
4. Provide supportive, non-judgmental responses
5. Ask clarifying questions when needed
6. Focus on helping the person develop insights and coping strategies
7. Maintain appropriate therapeutic boundaries
8. Your goal is to help the person understand themselves better and make positive changes
9. IMPORTANT: Do not say "thank you" after every response or greet the user repeatedly during a session.
   Only use appropriate greetings at the beginning of a session and closing remarks at the end.
   Focus on providing substantive therapeutic responses without unnecessary pleasantries.

After each session, you should generate clinical notes covering key themes, observed patterns,
strategies used, progress toward stated goals, areas for future exploration, and any risk factors.
These notes will be used to maintain continuity between sessions.`

// systemPrompt returns the full session system prompt for an approach,
// falling back to CBT for anything unknown.
func systemPrompt(approach models.Approach) string {
	prompt, ok := approachPrompts[approach]
	if !ok {
		prompt = approachPrompts[models.ApproachCBT]
	}
	return prompt + therapistInstructions
}

// buildContext compiles profile, journal, and note context for a prompt.
func buildContext(profile models.Profile, entries []models.JournalEntry, notes []models.Note) string {
	var b strings.Builder

	b.WriteString("USER PROFILE:\n")
	if len(profile) == 0 {
		b.WriteString("No profile information available yet.\n")
	} else {
		// Canonical field order keeps prompts deterministic
		for _, field := range models.ProfileFields {
			if v := profile[field.Key]; v != "" {
				fmt.Fprintf(&b, "%s: %s\n", field.Key, v)
			}
		}
	}

	b.WriteString("\nPREVIOUS THERAPY NOTES:\n")
	if len(notes) == 0 {
		b.WriteString("No previous therapy notes available.\n")
	} else {
		for i, note := range notes {
			if i >= maxContextNotes {
				break
			}
			fmt.Fprintf(&b, "Date: %s\n%s\n\n", note.Timestamp.Format(time.RFC3339), note.Text)
		}
	}

	b.WriteString("\nRECENT JOURNAL ENTRIES:\n")
	if len(entries) == 0 {
		b.WriteString("No journal entries available.\n")
	} else {
		for i, entry := range entries {
			if i >= maxContextEntries {
				break
			}
			fmt.Fprintf(&b, "Date: %s\n%s\n\n", entry.Timestamp.Format(time.RFC3339), entry.Text)
		}
	}

	return b.String()
}

// sessionPrompts builds the (system, user) prompt pair for one exchange.
func sessionPrompts(approach models.Approach, profile models.Profile, entries []models.JournalEntry, notes []models.Note, userMessage string) (string, string) {
	context := buildContext(profile, entries, notes)
	user := fmt.Sprintf("CONTEXT:\n%s\n\nUSER QUERY: %s", context, userMessage)
	return systemPrompt(approach), user
}

// notesPrompts builds the (system, user) prompt pair for clinical note
// generation from a finished transcript.
func notesPrompts(approach models.Approach, profile models.Profile, notes []models.Note, transcript string) (string, string) {
	system := fmt.Sprintf(`You are an experienced %s therapist.
Generate clinical notes for the following therapy session.
Focus on key themes, patterns, progress, and areas for future exploration.
Be concise, professional, and objective.
Do not include unnecessary pleasantries or formalities in your notes.`, approach)

	var prior strings.Builder
	for i, note := range notes {
		if i >= maxNotesForNotes {
			break
		}
		fmt.Fprintf(&prior, "Date: %s\n%s\n\n", note.Timestamp.Format(time.RFC3339), note.Text)
	}
	if prior.Len() == 0 {
		prior.WriteString("None.\n")
	}

	var profileText strings.Builder
	for _, field := range models.ProfileFields {
		if v := profile[field.Key]; v != "" {
			fmt.Fprintf(&profileText, "%s: %s\n", field.Key, v)
		}
	}
	if profileText.Len() == 0 {
		profileText.WriteString("None.\n")
	}

	user := fmt.Sprintf(`CONTEXT:
User Profile:
%s
Previous Notes:
%s
SESSION TRANSCRIPT:
%s

Based on this session, generate comprehensive clinical notes that include:
1. Key themes and topics discussed
2. Observed patterns, behaviors, or thinking styles
3. Progress toward stated goals
4. Areas for future exploration
5. Any risk factors or concerns

Format your notes professionally in a clear structure.`, profileText.String(), prior.String(), transcript)

	return system, user
}

// Patterns for greetings and thanks the model tends to pad with.
var cleanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^(Hello|Hi|Hey|Greetings|Good morning|Good afternoon|Good evening)[,.\s!]*\s*`),
	regexp.MustCompile(`(?im)^Thank you.*?for (sharing|your|this).*?\.\s*`),
	regexp.MustCompile(`(?im)^I appreciate.*?(sharing|your message|your thoughts).*?\.\s*`),
	regexp.MustCompile(`(?im)(Thank you|Thanks)(\s|\.|,|!)*$`),
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// cleanResponse strips redundant greetings/thanks and collapses blank runs.
func cleanResponse(text string) string {
	for _, p := range cleanPatterns {
		text = p.ReplaceAllString(text, "")
	}
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
