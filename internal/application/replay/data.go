package replay

import "github.com/younwookim/gravshift/internal/application/system"

// Version is written into every recording
const Version = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F   int     `json:"f"`             // Frame number
	MX  float64 `json:"mx,omitempty"`  // Move right
	MY  float64 `json:"my,omitempty"`  // Move forward
	JP  bool    `json:"jp,omitempty"`  // JumpPressed
	RX  float64 `json:"rx,omitempty"`  // Reorient aim right
	RY  float64 `json:"ry,omitempty"`  // Reorient aim forward
	RB  bool    `json:"rb,omitempty"`  // ReorientBegan
	RH  bool    `json:"rh,omitempty"`  // ReorientHeld
	RR  bool    `json:"rr,omitempty"`  // ReorientReleased
	C   bool    `json:"c,omitempty"`   // ConfirmPressed
	Yaw float64 `json:"yaw,omitempty"` // CameraYaw
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Dt        float64      `json:"dt"` // seconds per recorded frame
	Frames    []FrameInput `json:"frames"`
}

// NewFrameInput packs one frame of input
func NewFrameInput(frame int, in system.InputState) FrameInput {
	return FrameInput{
		F:   frame,
		MX:  in.Move[0],
		MY:  in.Move[1],
		JP:  in.JumpPressed,
		RX:  in.Reorient[0],
		RY:  in.Reorient[1],
		RB:  in.ReorientBegan,
		RH:  in.ReorientHeld,
		RR:  in.ReorientReleased,
		C:   in.ConfirmPressed,
		Yaw: in.CameraYaw,
	}
}

// Input unpacks the recorded frame
func (fi FrameInput) Input() system.InputState {
	var in system.InputState
	in.Move[0], in.Move[1] = fi.MX, fi.MY
	in.JumpPressed = fi.JP
	in.Reorient[0], in.Reorient[1] = fi.RX, fi.RY
	in.ReorientBegan = fi.RB
	in.ReorientHeld = fi.RH
	in.ReorientReleased = fi.RR
	in.ConfirmPressed = fi.C
	in.CameraYaw = fi.Yaw
	return in
}
