package state

// ModalView names the content shown inside the modal.
type ModalView string

const (
	ViewNone        ModalView = ""
	ViewSelectToken ModalView = "SELECT_TOKEN_VIEW"
)

// ModalState is the modal's visibility plus the view it renders.
type ModalState struct {
	Display bool
	View    ModalView
	Props   any
}

// Open reports whether the modal is showing content.
func (m ModalState) Open() bool {
	return m.Display && m.View != ViewNone
}

// UI is the session-wide UI state handle: modal, scroll lock and the
// blocking alert. It is owned by the bubbletea update loop and is not safe
// for concurrent use.
type UI struct {
	modal        ModalState
	scrollLocked bool
	alert        string
}

// NewUI returns a handle with the modal closed.
func NewUI() *UI {
	return &UI{}
}

// OpenModal makes the modal visible and suspends background scrolling.
func (u *UI) OpenModal() {
	u.modal.Display = true
	u.scrollLocked = true
}

// SetModalView selects the modal content. Unknown views are ignored.
func (u *UI) SetModalView(view ModalView, props any) {
	switch view {
	case ViewSelectToken:
		u.modal.View = view
		u.modal.Props = props
	}
}

// CloseModal hides the modal, resets its view and props and restores
// background scrolling. It is safe to call when already closed.
func (u *UI) CloseModal() {
	u.modal = ModalState{}
	u.scrollLocked = false
}

// Modal returns the current modal state.
func (u *UI) Modal() ModalState {
	return u.modal
}

// ScrollLocked reports whether background input is suspended.
func (u *UI) ScrollLocked() bool {
	return u.scrollLocked
}

// Alert shows a blocking message until DismissAlert.
func (u *UI) Alert(text string) {
	u.alert = text
}

// DismissAlert clears the alert.
func (u *UI) DismissAlert() {
	u.alert = ""
}

// AlertText returns the active alert, or "" when none is shown.
func (u *UI) AlertText() string {
	return u.alert
}
