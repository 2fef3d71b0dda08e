//go:build darwin

package clipboard

import "testing"

func TestPasteTextRequiresAccessibility(t *testing.T) {
	t.Log("clipboard.PasteText requires Accessibility permissions for full testing")
}
