// Package chrome holds the two layout flags shared by the sidebar, header
// and mobile menu. The flags are independent of each other.
package chrome

// Flags is the UI chrome state.
type Flags struct {
	SidebarCollapsed bool `json:"sidebarCollapsed"`
	MobileMenuOpen   bool `json:"mobileMenuOpen"`
}

// ToggleSidebar flips SidebarCollapsed.
func (f *Flags) ToggleSidebar() {
	f.SidebarCollapsed = !f.SidebarCollapsed
}

// SetMobileMenuOpen sets MobileMenuOpen to open. Returns true if the value
// changed.
func (f *Flags) SetMobileMenuOpen(open bool) bool {
	if f.MobileMenuOpen == open {
		return false
	}
	f.MobileMenuOpen = open
	return true
}
