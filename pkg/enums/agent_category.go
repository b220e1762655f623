package enums

import "fmt"

// AgentCategory classifies a directory agent by the service they broker.
type AgentCategory string

const (
	AgentCategoryVisa    AgentCategory = "VISA"
	AgentCategoryHousing AgentCategory = "HOUSING"
)

var validAgentCategories = []AgentCategory{
	AgentCategoryVisa,
	AgentCategoryHousing,
}

// String implements fmt.Stringer.
func (a AgentCategory) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AgentCategory.
func (a AgentCategory) IsValid() bool {
	for _, candidate := range validAgentCategories {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAgentCategory converts raw input into an AgentCategory.
func ParseAgentCategory(value string) (AgentCategory, error) {
	for _, candidate := range validAgentCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid agent category %q", value)
}
