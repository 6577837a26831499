package explain

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a concise Italian grammar tutor for English speakers. A learner typed a wrong form while drilling vocabulary. Explain the mistake briefly and name the rule that produces the correct form.`

func buildUserMessage(m Mistake) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Exercise type: %s\n", m.Kind)
	fmt.Fprintf(&b, "Prompt: %s\n", m.Prompt)
	if m.Field != "" {
		fmt.Fprintf(&b, "Asked form: %s\n", m.Field)
	}
	given := m.Given
	if strings.TrimSpace(given) == "" {
		given = "(left blank)"
	}
	fmt.Fprintf(&b, "Learner answered: %s\n", given)
	fmt.Fprintf(&b, "Correct answer: %s\n", m.Expected)

	b.WriteString(`
Instructions:
1. If the answer only differs in accents or apostrophes, say so.
2. Keep the explanation under 60 words.
3. The rule must be a single line the learner can memorize.`)

	return b.String()
}
