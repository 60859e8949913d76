// Package prompt builds the instruction strings sent to the generation
// provider. Every function is pure: the same inputs always give the same
// prompt. No length limit is applied to any input.
package prompt

import (
	"fmt"
	"strings"

	"hsl-agent/internal/domain"
)

const chatPreamble = `Você é um assistente virtual especializado no Hospital Sírio Libanês.
Baseie todas as suas respostas nestas diretrizes oficiais do Hospital Sírio Libanês:
%s

Regras importantes:
- Seja preciso e técnico
- Mantenha o tom profissional mas amigável
- Se a pergunta for irrelevante, oriente educadamente
- Forneça exemplos quando útil`

const (
	historyHeader = "Histórico da conversa:"
	replyCue      = "Resposta:"
)

// Chat renders the guidelines, the given turns in chronological order and a
// cue asking for the next assistant reply.
func Chat(guidelines string, turns []domain.Turn) string {
	var b strings.Builder
	fmt.Fprintf(&b, chatPreamble, guidelines)
	b.WriteString("\n\n")
	b.WriteString(historyHeader)
	b.WriteString("\n")
	b.WriteString(domain.FormatTurns(turns))
	b.WriteString("\n\n")
	b.WriteString(replyCue)
	return b.String()
}

const visualGuideTemplate = `Você é um designer que trabalha para a Macfor Marketing digital e você deve gerar conteúdo criativo para o cliente Hospital Sírio Libanês.

Crie um manual técnico para designers baseado em:
Brief: %s
Diretrizes: %s

Inclua:
1. 🎨 Paleta de cores (códigos HEX/RGB)
2. 🖼️ Diretrizes de fotografia
3. ✏️ Tipografia hierárquica
4. 📐 Grid e proporções
5. ⚠️ Restrições de uso
6. Descrição exata e palpável da imagem a ser utilizada no criativo que atenda a todas as guias acima`

const copywritingTemplate = `Crie textos para campanha considerando:
Brief: %s
Diretrizes: %s

Entregar:
- 🎯 3 opções de headline
- 📝 Corpo de texto (200 caracteres)
- 📢 2 variações de CTA
- 🔍 Meta description (SEO)`

// CreativeBrief turns a campaign brief into a visual guide or copywriting
// request. An empty brief is passed through unchanged.
func CreativeBrief(guidelines, brief string, kind domain.CreativeKind) (string, error) {
	switch kind {
	case domain.CreativeVisualGuide:
		return fmt.Sprintf(visualGuideTemplate, brief, guidelines), nil
	case domain.CreativeCopywriting:
		return fmt.Sprintf(copywritingTemplate, brief, guidelines), nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownCreativeKind, kind)
}

var verbosityInstructions = map[domain.Verbosity]string{
	domain.VerbosityExtensive: "um resumo detalhado mantendo cerca de 50% do conteúdo original",
	domain.VerbosityModerate:  "um resumo conciso mantendo cerca de 30% do conteúdo original",
	domain.VerbosityConcise:   "um resumo muito breve com apenas os pontos essenciais (cerca de 10-15%)",
}

const (
	bulletInstruction      = "Inclua os principais pontos em tópicos"
	proseInstruction       = "Formato de texto contínuo"
	terminologyInstruction = "Mantenha a terminologia técnica específica"
	simplifyInstruction    = "Simplifique a linguagem"

	bulletSection = "Principais pontos em tópicos (se aplicável)"
	proseSection  = "Resumo textual"
)

// Summary builds the summarization prompt for sourceText. Callers are expected
// to reject blank input before calling it.
func Summary(guidelines, sourceText string, opts domain.SummaryOptions) (string, error) {
	depth, ok := verbosityInstructions[opts.Verbosity]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownVerbosity, opts.Verbosity)
	}

	format, section := proseInstruction, proseSection
	if opts.BulletPoints {
		format, section = bulletInstruction, bulletSection
	}
	language := simplifyInstruction
	if opts.PreserveTerminology {
		language = terminologyInstruction
	}

	var b strings.Builder
	b.WriteString("Crie um resumo profissional deste texto para o Hospital Sírio Libanês,\n")
	b.WriteString("seguindo rigorosamente estas diretrizes da marca:\n")
	b.WriteString(guidelines)
	b.WriteString("\n\nRequisitos:\n")
	fmt.Fprintf(&b, "- %s\n", depth)
	fmt.Fprintf(&b, "- %s\n", format)
	fmt.Fprintf(&b, "- %s\n", language)
	// hospital brand requirements only; sector lines from other clients
	// (agronegócio, cooperativa) do not belong here
	b.WriteString("- Mantenha o tom profissional do HSL\n")
	b.WriteString("\nTexto para resumir:\n")
	b.WriteString(sourceText)
	b.WriteString("\n\nEstrutura do resumo:\n")
	b.WriteString("1. Título do resumo\n")
	fmt.Fprintf(&b, "2. %s\n", section)
	b.WriteString("3. Conclusão/Recomendações")
	return b.String(), nil
}
