package semantic

import (
	"fmt"
	"strings"
)

// BuildPrompt asks the model to judge a freestyle submission and answer with
// a single JSON object using Portuguese field names.
func BuildPrompt(theme, style string, verses []string) string {
	var b strings.Builder
	b.WriteString("Você é um jurado experiente de batalhas de rima e freestyle brasileiro.\n")
	b.WriteString("Avalie os versos abaixo considerando o tema e o estilo pedidos.\n\n")
	fmt.Fprintf(&b, "Tema: %s\n", orDash(theme))
	fmt.Fprintf(&b, "Estilo: %s\n\n", orDash(style))
	b.WriteString("Versos:\n")
	for i, v := range verses {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(v))
	}
	b.WriteString("\nDê notas de 0 a 10 para a qualidade geral (score), a coerência com o tema (coerencia) ")
	b.WriteString("e a originalidade (originalidade), e um comentário curto em português (feedback).\n")
	b.WriteString("Responda APENAS com um objeto JSON neste formato:\n")
	b.WriteString(`{"score": 0, "coerencia": 0, "originalidade": 0, "feedback": ""}`)
	return b.String()
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "livre"
	}
	return s
}
