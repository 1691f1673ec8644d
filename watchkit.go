package appdelegate

// HandleWatchKitExtensionRequest forwards a request from the WatchKit
// extension. The OS may deliver it before launching finishes, so the
// application is set up first if needed. reply is called exactly once on
// every path.
func (d *Delegate) HandleWatchKitExtensionRequest(userInfo map[string]any, reply func(map[string]any)) {
	respond := once(d, "watchkit reply", reply)

	wk := d.caps.watchKit
	if wk == nil {
		d.fault("received WatchKit extension request but the application is not WatchKitCapable; ignoring")
		respond(nil)
		return
	}

	d.setupApplicationOnce()
	wk.HandleWatchKitExtensionRequest(userInfo, respond)
}
