package wire

// Status is embedded in every response message. Errno mirrors the
// original implementation's boolean error flag: true means the call
// succeeded. Errmes carries a human-readable reason when Errno is
// false; it is empty on success.
type Status struct {
	Errno  bool
	Errmes string
}

// Ok builds a successful Status.
func Ok() Status { return Status{Errno: true} }

// Fail builds a failed Status carrying msg.
func Fail(msg string) Status { return Status{Errno: false, Errmes: msg} }
