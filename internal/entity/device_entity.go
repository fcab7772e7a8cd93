package entity

import "strings"

type Device struct {
	Id         int
	Label      string
	BrandLabel string
	TypeLabel  string
}

// Description renders "<brand> <type> <label>", skipping missing parts.
func (d *Device) Description() string {
	if d == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{d.BrandLabel, d.TypeLabel, d.Label} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
