package appdelegate

// State restoration is optional: without the capability the OS is told
// not to save or restore, and no fault is noted.

func (d *Delegate) ShouldSaveApplicationState(c Coder) bool {
	if d.caps.stateRestoration == nil {
		return false
	}
	return d.caps.stateRestoration.ShouldSaveApplicationState(c)
}

func (d *Delegate) ShouldRestoreApplicationState(c Coder) bool {
	if d.caps.stateRestoration == nil {
		return false
	}
	return d.caps.stateRestoration.ShouldRestoreApplicationState(c)
}

func (d *Delegate) WillEncodeRestorableState(c Coder) {
	if d.caps.stateRestoration == nil {
		return
	}
	d.caps.stateRestoration.WillEncodeRestorableState(c)
}

func (d *Delegate) DidDecodeRestorableState(c Coder) {
	if d.caps.stateRestoration == nil {
		return
	}
	d.caps.stateRestoration.DidDecodeRestorableState(c)
}
