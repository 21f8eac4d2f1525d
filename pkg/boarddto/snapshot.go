package boarddto

// MaterialScore is the point value each side has lost.
type MaterialScore struct {
	Pink int `json:"pink"`
	Blue int `json:"blue"`
}

// CapturedPieces lists captured piece tokens per owning side, oldest first.
type CapturedPieces struct {
	Pink []string `json:"pink"`
	Blue []string `json:"blue"`
}

// ScrollOffsets is the first visible ledger index per side.
type ScrollOffsets struct {
	Pink int `json:"pink"`
	Blue int `json:"blue"`
}

type Drag struct {
	Piece string `json:"piece"`
	From  string `json:"from"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// Snapshot is the JSON form of one frame of game state.
type Snapshot struct {
	SessionID string         `json:"session_id"`
	Version   uint64         `json:"version"`
	FEN       string         `json:"fen"`
	Turn      string         `json:"turn"`
	Rows      []string       `json:"rows"`
	Selected  string         `json:"selected,omitempty"`
	Drag      *Drag          `json:"drag,omitempty"`
	Hints     []string       `json:"hints,omitempty"`
	Captured  CapturedPieces `json:"captured"`
	Offsets   ScrollOffsets  `json:"offsets"`
	Material  MaterialScore  `json:"material"`
	Finished  bool           `json:"finished"`
}
