package datatable

import "fmt"

// State holds the user's table settings, which are persisted between runs by
// the SettingsStore.
type State struct {
	SortBy   string `yaml:"sortBy,omitempty" json:"sortBy,omitempty"`
	SortDesc bool   `yaml:"sortDesc,omitempty" json:"sortDesc,omitempty"`
	Search   string `yaml:"search,omitempty" json:"search,omitempty"`
	PageSize int    `yaml:"pageSize,omitempty" json:"pageSize,omitempty"`
	// Page is 1-based. Values below 1 mean the first page.
	Page int `yaml:"-" json:"page,omitempty"`
}

func (s State) page(pageCount int) int {
	switch {
	case s.Page < 1:
		return 1
	case s.Page > pageCount:
		return pageCount
	default:
		return s.Page
	}
}

// Validate returns an error if the state contains nonsensical values.
func (s State) Validate() error {
	if s.PageSize < 0 {
		return fmt.Errorf("page size must not be negative: %d", s.PageSize)
	}
	if s.Page < 0 {
		return fmt.Errorf("page must not be negative: %d", s.Page)
	}
	return nil
}
