// Package types provides type definitions for structured data used throughout the outreach-composer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Bounds applied when compacting raw profiles before planning.
// Everything beyond these prefixes is dropped, never an error.
const (
	MaxSenderSchools     = 3
	MaxSenderExperiences = 3
	MaxProofPoints       = 6
	MaxFocusAreas        = 6
	MaxDoNotSay          = 12
	MaxCallerHooks       = 3
	MaxTargetExperiences = 2
	MaxTargetEducation   = 1
	MaxDerivedHooks      = 5
)

// Experience is a single {title, company} entry on a target profile
type Experience struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

// Education is a single school entry on a target profile
type Education struct {
	School string `json:"school"`
}

// SenderProfile describes the person sending the outreach message.
// Unknown extra keys in the request payload are simply dropped.
type SenderProfile struct {
	Headline       string   `json:"headline"`
	Location       string   `json:"location"`
	Schools        []string `json:"schools"`
	Experiences    []string `json:"experiences"`
	ProofPoints    []string `json:"proof_points"`
	FocusAreas     []string `json:"focus_areas"`
	InternshipGoal string   `json:"internship_goal"`
	DoNotSay       []string `json:"do_not_say" validate:"dive,max=200"`
	TonePreference string   `json:"tone_preference"`
}

// TargetProfile describes the person the message is addressed to
type TargetProfile struct {
	Name           string       `json:"name"`
	Headline       string       `json:"headline"`
	Location       string       `json:"location"`
	About          string       `json:"about"`
	TopExperiences []Experience `json:"top_experiences"`
	Education      []Education  `json:"education"`
}

// Compact returns a copy of the profile with list fields truncated to the
// documented bounds. The compact form is what every planning stage sees.
func (p SenderProfile) Compact() SenderProfile {
	out := p
	out.Schools = boundStrings(p.Schools, MaxSenderSchools)
	out.Experiences = boundStrings(p.Experiences, MaxSenderExperiences)
	out.ProofPoints = boundStrings(p.ProofPoints, MaxProofPoints)
	out.FocusAreas = boundStrings(p.FocusAreas, MaxFocusAreas)
	out.DoNotSay = boundStrings(p.DoNotSay, MaxDoNotSay)
	if out.TonePreference == "" {
		out.TonePreference = "warm"
	}
	return out
}

// Compact returns a copy of the profile bounded to the documented prefixes
func (p TargetProfile) Compact() TargetProfile {
	out := p
	if len(p.TopExperiences) > MaxTargetExperiences {
		out.TopExperiences = append([]Experience(nil), p.TopExperiences[:MaxTargetExperiences]...)
	}
	if len(p.Education) > MaxTargetEducation {
		out.Education = append([]Education(nil), p.Education[:MaxTargetEducation]...)
	}
	return out
}

func boundStrings(items []string, max int) []string {
	filtered := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		filtered = append(filtered, item)
		if len(filtered) == max {
			break
		}
	}
	return filtered
}
