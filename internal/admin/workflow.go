package admin

import (
	"sync"

	"whatsfood/internal/model"
)

// Section is one tab of the admin panel.
type Section string

const (
	SectionGeneral    Section = "general"
	SectionAppearance Section = "appearance"
	SectionUsers      Section = "users"
	SectionSystem     Section = "system"
	SectionMenu       Section = "menu"
	SectionCategories Section = "categories"
)

// staffSections are the sections any authenticated role may open.
// Everything else requires admin.
var staffSections = map[Section]struct{}{
	SectionMenu:       {},
	SectionCategories: {},
}

var allSections = []Section{
	SectionGeneral,
	SectionAppearance,
	SectionUsers,
	SectionSystem,
	SectionMenu,
	SectionCategories,
}

// Workflow tracks which admin section is active for one signed-in
// user, constrained by their resolved role. Until the role is known
// the workflow is not ready and no section is exposed, so admin-only
// content never flashes for a user who turns out to be staff.
type Workflow struct {
	mu     sync.Mutex
	role   model.Role
	active Section
	ready  bool
}

// NewWorkflow creates a workflow in the loading state. The initial
// section is general; it only becomes visible once an admin role
// arrives.
func NewWorkflow() *Workflow {
	return &Workflow{active: SectionGeneral}
}

// SetRole completes role resolution. A staff role whose active section
// is admin-only is force-switched to menu.
func (w *Workflow) SetRole(role model.Role) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !role.Valid() {
		role = model.RoleStaff
	}
	w.role = role
	w.ready = true

	if !permitted(role, w.active) {
		w.active = SectionMenu
	}
}

// Activate switches to the given section. Rejected while the role is
// still unresolved and for sections the role may not open.
func (w *Workflow) Activate(section Section) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.ready {
		return model.ErrSectionForbidden
	}
	if !known(section) || !permitted(w.role, section) {
		return model.ErrSectionForbidden
	}

	w.active = section
	return nil
}

// Active returns the current section and whether the workflow is
// ready. Before role resolution the section is not meaningful and ok
// is false.
func (w *Workflow) Active() (Section, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active, w.ready
}

// Ready reports whether the role has been resolved.
func (w *Workflow) Ready() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ready
}

// Sections lists the sections the resolved role may open. Empty while
// loading.
func (w *Workflow) Sections() []Section {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.ready {
		return nil
	}

	out := make([]Section, 0, len(allSections))
	for _, s := range allSections {
		if permitted(w.role, s) {
			out = append(out, s)
		}
	}
	return out
}

func permitted(role model.Role, section Section) bool {
	if role == model.RoleAdmin {
		return true
	}
	_, ok := staffSections[section]
	return ok
}

func known(section Section) bool {
	for _, s := range allSections {
		if s == section {
			return true
		}
	}
	return false
}
