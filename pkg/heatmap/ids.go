package heatmap

// Role names one of the identifiers a heatmap scene defines.
type Role int

const (
	RoleFilter Role = iota
	RolePoint
	RolePointGradient
)

func (r Role) String() string {
	switch r {
	case RoleFilter:
		return "Filter"
	case RolePoint:
		return "Point"
	case RolePointGradient:
		return "PointGradient"
	}
	return "Unknown"
}

// Roles lists every role in definition order.
var Roles = []Role{RoleFilter, RolePoint, RolePointGradient}

// ID returns "heatmap"+role, followed by "_"+suffix when suffix is set.
func ID(role Role, suffix string) string {
	id := "heatmap" + role.String()
	if suffix != "" {
		id += "_" + suffix
	}
	return id
}
