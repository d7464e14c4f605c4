package step

import "errors"

// ErrMissingInstall is returned when a definition has no install action.
var ErrMissingInstall = errors.New("step has no install action")

// Handle refers to a step stored in a Graph.
type Handle int

// Definition describes a unit of provisioning work.
type Definition struct {
	ID          ID
	Name        string
	Description string
	Install     InstallFunc
	Check       Detector
	DependsOn   []Handle
}

// DisplayName returns Name, falling back to the ID.
func (d Definition) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID.String()
}
