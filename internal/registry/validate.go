package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/projector/internal/ctxlog"
)

// Validate performs a consistency check over the declarations: every
// component must name a registered type, and every alias must lead to a
// declared component. All problems are reported together.
func (m *Memory) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	m.mu.RLock()
	for _, id := range m.order {
		c := m.components[id]
		if c.TypeName == "" {
			errs = append(errs, fmt.Sprintf("component '%s': no implementation type declared", id))
			continue
		}
		if _, ok := m.types[c.TypeName]; !ok {
			errs = append(errs, fmt.Sprintf("component '%s': unknown implementation type '%s'", id, c.TypeName))
		}
	}
	aliases := make([]string, 0, len(m.aliases))
	for name := range m.aliases {
		aliases = append(aliases, name)
	}
	m.mu.RUnlock()

	for _, name := range sortedStrings(aliases) {
		if _, err := m.Resolve(name); err != nil {
			errs = append(errs, fmt.Sprintf("alias '%s': %v", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "components", m.Len())
	return nil
}
