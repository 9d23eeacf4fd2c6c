package state

type SetStateParams struct {
	PlayerID     string
	Ready        bool
	CurrentTime  float64
	BufferedTime float64
	Duration     float64
	Seeking      bool
	Ended        bool
	Muted        bool
	Volume       float64
	Paused       bool
	Fullscreen   bool
	Controls     *bool
	Rebuffering  bool
	Qualities    []string
	Quality      string
	Subtitles    []string
	Subtitle     string
	ErrorCode    string
	ErrorTitle   string
	ErrorMessage string
	LastEvent    string
	UpdatedAt    int64
}

// State is the mirrored snapshot as read back from storage. Controls is
// "true", "false" or "" when the player never reported it.
type State struct {
	Ready        bool    `redis:"ready"`
	CurrentTime  float64 `redis:"current_time"`
	BufferedTime float64 `redis:"buffered_time"`
	Duration     float64 `redis:"duration"`
	Seeking      bool    `redis:"seeking"`
	Ended        bool    `redis:"ended"`
	Muted        bool    `redis:"muted"`
	Volume       float64 `redis:"volume"`
	Paused       bool    `redis:"paused"`
	Fullscreen   bool    `redis:"fullscreen"`
	Controls     string  `redis:"controls"`
	Rebuffering  bool    `redis:"rebuffering"`
	Quality      string  `redis:"quality"`
	Subtitle     string  `redis:"subtitle"`
	ErrorCode    string  `redis:"error_code"`
	ErrorTitle   string  `redis:"error_title"`
	ErrorMessage string  `redis:"error_message"`
	LastEvent    string  `redis:"last_event"`
	UpdatedAt    int64   `redis:"updated_at"`
	Qualities    []string
	Subtitles    []string
}
