package boarddto

// Input event types sent by a web display.
const (
	EventPointerDown = "pointer_down"
	EventPointerMove = "pointer_move"
	EventPointerUp   = "pointer_up"
	EventScroll      = "scroll"
	EventKey         = "key"
	EventClose       = "close"
)

// ClientEvent is one input event in layout pixel coordinates. Button is 0 for
// primary, 1 for middle and 2 for secondary, as in DOM MouseEvent.button.
// DeltaY follows WheelEvent.deltaY: negative scrolls up.
type ClientEvent struct {
	Type   string  `json:"type"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Button int     `json:"button"`
	DeltaY float64 `json:"delta_y"`
	Key    string  `json:"key"`
}

// ServerMessage wraps everything the server sends as JSON text.
type ServerMessage struct {
	Type     string    `json:"type"` // "snapshot" or "error"
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Error    string    `json:"error,omitempty"`
	Width    int       `json:"width,omitempty"`
	Height   int       `json:"height,omitempty"`
}
