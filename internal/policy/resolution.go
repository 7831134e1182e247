package policy

// ResolutionPolicy selects how many reports sharing an appeal's target name
// are transitioned when the appeal is approved. The appeal→report link is a
// value-based join on target name, so several reports may match.
type ResolutionPolicy string

const (
	// ResolveFirstMatch transitions only the newest matching report.
	ResolveFirstMatch ResolutionPolicy = "FIRST_MATCH"
	// ResolveAllMatches transitions every matching report.
	ResolveAllMatches ResolutionPolicy = "ALL_MATCHES"
)
