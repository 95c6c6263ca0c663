package wire

// Sender is how anything that owns a peer's outbound queue is addressed.
// It lives in internal/wire rather than internal/session or
// internal/gameserver so both packages can depend on the same named type
// without session needing to import gameserver (gameserver already imports
// session, for Accept).
type Sender interface {
	Send(ev ServerEvent)
}
