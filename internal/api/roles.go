package api

import "brigade/internal/roles"

// rolesPayload shapes the canonical categories for the dashboard UI.
func rolesPayload() []map[string]any {
	all := roles.All()
	out := make([]map[string]any, 0, len(all))
	for _, cat := range all {
		out = append(out, map[string]any{
			"name":  cat.Name,
			"icon":  cat.Icon,
			"color": cat.Color,
			"level": cat.Level,
		})
	}
	return out
}
