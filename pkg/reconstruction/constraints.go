package reconstruction

import "shardsto3d/pkg/classify"

// ProfileConstraint is an extension point applied to the merged profile
// before the lathe. Implementations may eventually enforce geometric
// constraints derived from which fragment types are present (a rim pins
// the mouth radius, a base pins the foot).
type ProfileConstraint interface {
	// Apply returns the constrained profile. Implementations must not
	// mutate the input.
	Apply(profile Profile, stats Stats) Profile
}

// PresenceConstraint inspects rim/base presence in the store. It currently
// leaves the profile untouched: the checks are a reserved hook, and the
// output must stay identical to having no constraint at all.
type PresenceConstraint struct{}

// Apply reports the profile unchanged regardless of which types are
// present.
func (PresenceConstraint) Apply(profile Profile, stats Stats) Profile {
	hasRim := false
	hasBase := false
	for _, t := range stats.Types {
		switch t {
		case classify.Rim:
			hasRim = true
		case classify.Base:
			hasBase = true
		}
	}

	// Reserved for future geometric constraints; rim/base presence has no
	// effect on the profile today.
	_ = hasRim
	_ = hasBase
	return profile
}
