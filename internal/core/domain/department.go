package domain

import (
	"regexp"
	"strings"
)

// Department groups users. Name comparisons are case-insensitive everywhere;
// names are stored trimmed and lowercased so the collation-backed unique index
// and in-memory comparisons agree.
type Department struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	CanteenDiscount int      `json:"canteen_discount"`
	ManagerUsername string   `json:"manager_username,omitempty"`
	Employees       []string `json:"employees,omitempty"`
}

var departmentNameRe = regexp.MustCompile(`^[A-Za-z\s-]+$`)

// NormalizeDepartmentName trims and lowercases a department name for storage
// and lookup.
func NormalizeDepartmentName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidDepartmentName reports whether the name contains only letters, spaces,
// and hyphens and is non-empty after trimming.
func ValidDepartmentName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && departmentNameRe.MatchString(name)
}

// SameDepartment compares two department names case-insensitively.
func SameDepartment(a, b string) bool {
	return NormalizeDepartmentName(a) == NormalizeDepartmentName(b)
}
