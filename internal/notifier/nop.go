package notifier

type nopPlayer struct{}

// NopPlayer returns a Player that discards every alert. Used for headless
// and test environments.
func NopPlayer() Player {
	return nopPlayer{}
}

func (nopPlayer) Play() error {
	return nil
}

func (nopPlayer) Close() error {
	return nil
}

type nopToastSink struct{}

// NopToastSink returns a ToastSink that discards every toast.
func NopToastSink() ToastSink {
	return nopToastSink{}
}

func (nopToastSink) Show(Toast) {}
