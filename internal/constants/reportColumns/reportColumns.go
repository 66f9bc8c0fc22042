package reportcolumns

const (
	VulnerabilityId = "Vulnerability ID"
	PackageName     = "Package Name"
	Severity        = "Severity"
	Locations       = "Locations"
)

// FoundOnPrefix starts every per-scanner flag column, e.g. "Found on grype".
const FoundOnPrefix = "Found on "

const (
	FoundOnGrype = FoundOnPrefix + "grype"
	FoundOnTrivy = FoundOnPrefix + "trivy"
	FoundOnXRay  = FoundOnPrefix + "XRay"
)

var Required = []string{VulnerabilityId, PackageName, Severity, Locations}

// DuplicateKey is the composite key two findings must share to be duplicates.
var DuplicateKey = []string{VulnerabilityId, PackageName, Severity, Locations}

var SortOrder = []string{Severity, PackageName, VulnerabilityId}
