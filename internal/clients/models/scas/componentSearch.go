package scasmodels

// StakoNotAvailable is reported when SCAS has no rating for a component.
const StakoNotAvailable = "N/A"

type ComponentSearchResponse struct {
	Content []Component `json:"content"`
}

type Component struct {
	CompName    string `json:"compName"`
	CompVersion string `json:"compVersion"`
	StakoCode   string `json:"stakoCode"`
}
