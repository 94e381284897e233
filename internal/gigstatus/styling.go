package gigstatus

// Styling - семантические токены для отрисовки статуса. Конкретные классы
// выбирает клиент.
type Styling struct {
	Color   string `json:"color"`
	Tone    string `json:"tone"`
	Weight  string `json:"weight"`
	ShowDot bool   `json:"show_dot"`
	Pulse   bool   `json:"pulse"`
}

func StylingFor(status Status) Styling {
	switch status {
	case StatusUrgent:
		return Styling{Color: "red", Tone: "danger", Weight: "bold", ShowDot: true, Pulse: true}
	case StatusClosingSoon:
		return Styling{Color: "orange", Tone: "warning", Weight: "semibold", Pulse: true}
	case StatusNew:
		return Styling{Color: "green", Tone: "success", Weight: "medium"}
	case StatusClosed:
		return Styling{Color: "gray", Tone: "muted", Weight: "normal"}
	default:
		return Styling{Color: "blue", Tone: "info", Weight: "normal"}
	}
}
