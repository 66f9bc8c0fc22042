package severityconstants

const (
	Critical = "CRITICAL"
	High     = "HIGH"
	Medium   = "MEDIUM"
	Low      = "LOW"
)

// Ladder is ordered from the most to the least severe.
var Ladder = []string{Critical, High, Medium, Low}
