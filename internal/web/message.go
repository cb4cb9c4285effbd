package web

// Event names on the wire.
const (
	EventFrame = "frame"
	EventScore = "score"
	EventLabel = "label"
	EventKey   = "key"
)

// Draw operation names inside a frame.
const (
	OpClear = "clear"
	OpRect  = "rect"
	OpText  = "text"
)

// Message is anything sent over the socket.
type Message interface {
	GetEvent() string
}

// DrawOp is one canvas call replayed by the page.
type DrawOp struct {
	Op    string `json:"op"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w,omitempty"`
	H     int    `json:"h,omitempty"`
	Color string `json:"color,omitempty"`
	Text  string `json:"text,omitempty"`
}

type FrameMessage struct {
	Event string   `json:"event"`
	Ops   []DrawOp `json:"ops"`
}

func (m FrameMessage) GetEvent() string {
	return m.Event
}

type ScoreMessage struct {
	Event string `json:"event"`
	Score int    `json:"score"`
}

func (m ScoreMessage) GetEvent() string {
	return m.Event
}

type LabelMessage struct {
	Event string `json:"event"`
	Label string `json:"label"`
}

func (m LabelMessage) GetEvent() string {
	return m.Event
}

// KeyMessage is the only message the page sends.
type KeyMessage struct {
	Event string `json:"event"`
	Key   string `json:"key"`
}

func (m KeyMessage) GetEvent() string {
	return m.Event
}
