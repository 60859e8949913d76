package domain

import (
	"fmt"
	"strings"
)

type Verbosity string

const (
	VerbosityExtensive Verbosity = "extensive"
	VerbosityModerate  Verbosity = "moderate"
	VerbosityConcise   Verbosity = "concise"
)

// ParseVerbosity accepts the English names and the Portuguese labels shown to
// users ("extenso", "moderado", "conciso").
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "extensive", "extenso":
		return VerbosityExtensive, nil
	case "moderate", "moderado":
		return VerbosityModerate, nil
	case "concise", "conciso":
		return VerbosityConcise, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVerbosity, s)
}

// SummaryOptions is built fresh for every summary request.
type SummaryOptions struct {
	Verbosity           Verbosity `json:"verbosity"`
	BulletPoints        bool      `json:"bullet_points"`
	PreserveTerminology bool      `json:"preserve_terminology"`
}

func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{
		Verbosity:           VerbosityModerate,
		BulletPoints:        true,
		PreserveTerminology: true,
	}
}

type CreativeKind string

const (
	CreativeVisualGuide CreativeKind = "visual_guide"
	CreativeCopywriting CreativeKind = "copywriting"
)

func ParseCreativeKind(s string) (CreativeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "visual_guide", "visual":
		return CreativeVisualGuide, nil
	case "copywriting", "copy":
		return CreativeCopywriting, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCreativeKind, s)
}

const (
	SummaryArtifactName = "resumo_hsl.txt"
	SummaryArtifactMIME = "text/plain"
)

// Artifact is a downloadable rendering of a result.
type Artifact struct {
	Filename string
	MIMEType string
	Data     []byte
}
