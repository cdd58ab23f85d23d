package spectate

import (
	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

// Message is the JSON envelope sent to spectators.
type Message struct {
	Type   string `json:"type"`
	Player string `json:"player,omitempty"`
	Data   any    `json:"data"`
}

type stateData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type optionData struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	Mechanic   string  `json:"mechanic"`
	Risk       string  `json:"risk"`
	Multiplier float64 `json:"multiplier"`
}

type rowData struct {
	Tier     int          `json:"tier"`
	Status   string       `json:"status"`
	Options  []optionData `json:"options"`
	Selected int          `json:"selected"`
}

type towerData struct {
	CurrentTier int       `json:"currentTier"`
	Score       int       `json:"score"`
	Multiplier  float64   `json:"multiplier"`
	BestScore   int       `json:"bestScore"`
	Rows        []rowData `json:"rows"`
}

type hudData struct {
	Tier          int     `json:"tier"`
	Floor         string  `json:"floor"`
	Score         int     `json:"score"`
	TimeRemaining float64 `json:"timeRemaining"`
	FPS           int     `json:"fps,omitempty"`
}

type countdownData struct {
	Tier      int        `json:"tier"`
	Floor     optionData `json:"floor"`
	Remaining int        `json:"remaining"`
}

type rectData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type obstacleData struct {
	Kind     string   `json:"kind"`
	Rect     rectData `json:"rect"`
	GapX     float64  `json:"gapX,omitempty"`
	GapWidth float64  `json:"gapWidth,omitempty"`
	Visible  bool     `json:"visible"`
}

type collectibleData struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Target bool    `json:"target,omitempty"`
	Health int     `json:"health,omitempty"`
}

type frameData struct {
	Width          float64           `json:"width"`
	Height         float64           `json:"height"`
	Player         rectData          `json:"player"`
	Obstacles      []obstacleData    `json:"obstacles"`
	Collectibles   []collectibleData `json:"collectibles"`
	TimeRemaining  float64           `json:"timeRemaining"`
	DamageTaken    int               `json:"damageTaken"`
	ItemsCollected int               `json:"itemsCollected"`
	TotalItems     int               `json:"totalItems"`
}

type resultData struct {
	Tier          int      `json:"tier"`
	NextTier      int      `json:"nextTier"`
	Floor         string   `json:"floor"`
	Success       bool     `json:"success"`
	TimeRemaining float64  `json:"timeRemaining"`
	DamageTaken   int      `json:"damageTaken"`
	Base          int      `json:"base"`
	TimeBonus     int      `json:"timeBonus"`
	Performance   int      `json:"performance"`
	Multiplier    float64  `json:"multiplier"`
	Total         int      `json:"total"`
	Rewards       []string `json:"rewards"`
	RunScore      int      `json:"runScore"`
}

type summaryData struct {
	Score             int     `json:"score"`
	FloorsCleared     int     `json:"floorsCleared"`
	TotalTime         string  `json:"totalTime"`
	HighestMultiplier float64 `json:"highestMultiplier"`
	IsNewBest         bool    `json:"isNewBest"`
	IsFastest         bool    `json:"isFastest"`
}

type gameOverData struct {
	Score         int  `json:"score"`
	Tier          int  `json:"tier"`
	FloorsCleared int  `json:"floorsCleared"`
	IsNewBest     bool `json:"isNewBest"`
}

// Encode converts an engine event to a spectator message. It returns false
// for events spectators do not get.
func Encode(player string, e engine.Event) (Message, bool) {
	msg := Message{Player: player}
	switch ev := e.(type) {
	case engine.StateChangedEvent:
		msg.Type = "state"
		msg.Data = stateData{From: ev.From.String(), To: ev.To.String()}
	case engine.TowerMapEvent:
		msg.Type = "tower"
		msg.Data = encodeTower(ev)
	case engine.HUDEvent:
		msg.Type = "hud"
		h := hudData{Tier: ev.Tier, Floor: ev.Floor, Score: ev.Score, TimeRemaining: ev.TimeRemaining}
		if ev.ShowFPS {
			h.FPS = ev.FPS
		}
		msg.Data = h
	case engine.CountdownEvent:
		msg.Type = "countdown"
		msg.Data = countdownData{
			Tier:      ev.Tier,
			Floor:     encodeOption(engine.FloorOption{Template: ev.Floor, Risk: ev.Risk}),
			Remaining: ev.Remaining,
		}
	case engine.FrameEvent:
		msg.Type = "frame"
		msg.Data = encodeFrame(ev)
	case engine.FloorResultEvent:
		msg.Type = "result"
		msg.Data = resultData{
			Tier:          ev.Tier,
			NextTier:      ev.NextTier,
			Floor:         ev.Floor.Name,
			Success:       ev.Report.Success,
			TimeRemaining: ev.Report.TimeRemaining,
			DamageTaken:   ev.Report.DamageTaken,
			Base:          ev.Score.Base,
			TimeBonus:     ev.Score.TimeBonus,
			Performance:   ev.Score.Performance,
			Multiplier:    ev.Score.Multiplier,
			Total:         ev.Score.Total,
			Rewards:       ev.Score.Rewards,
			RunScore:      ev.RunScore,
		}
	case engine.RunSummaryEvent:
		msg.Type = "summary"
		msg.Data = summaryData{
			Score:             ev.Score,
			FloorsCleared:     ev.FloorsCleared,
			TotalTime:         ev.TotalTime,
			HighestMultiplier: ev.HighestMultiplier,
			IsNewBest:         ev.IsNewBest,
			IsFastest:         ev.IsFastest,
		}
	case engine.GameOverEvent:
		msg.Type = "gameover"
		msg.Data = gameOverData{
			Score:         ev.Score,
			Tier:          ev.Tier,
			FloorsCleared: ev.FloorsCleared,
			IsNewBest:     ev.IsNewBest,
		}
	default:
		return Message{}, false
	}
	return msg, true
}

func encodeOption(opt engine.FloorOption) optionData {
	return optionData{
		ID:         opt.Template.ID,
		Name:       opt.Template.Name,
		Icon:       opt.Template.Icon,
		Mechanic:   string(opt.Template.Mechanic),
		Risk:       opt.Risk.Level.String(),
		Multiplier: opt.Risk.Multiplier,
	}
}

func encodeTower(ev engine.TowerMapEvent) towerData {
	t := towerData{
		CurrentTier: ev.CurrentTier,
		Score:       ev.Score,
		Multiplier:  ev.Multiplier,
		BestScore:   ev.BestScore,
		Rows:        make([]rowData, len(ev.Rows)),
	}
	for i, row := range ev.Rows {
		r := rowData{Tier: row.Tier, Status: row.Status.String(), Selected: row.Selected}
		for _, opt := range row.Options {
			r.Options = append(r.Options, encodeOption(opt))
		}
		t.Rows[i] = r
	}
	return t
}

func encodeFrame(ev engine.FrameEvent) frameData {
	f := frameData{
		Width:          ev.Arena.Width,
		Height:         ev.Arena.Height,
		Player:         rectData{X: ev.Player.X, Y: ev.Player.Y, W: ev.Player.W, H: ev.Player.H},
		Obstacles:      make([]obstacleData, 0, len(ev.Obstacles)),
		Collectibles:   make([]collectibleData, 0, len(ev.Collectibles)),
		TimeRemaining:  ev.TimeRemaining,
		DamageTaken:    ev.DamageTaken,
		ItemsCollected: ev.ItemsCollected,
		TotalItems:     ev.TotalItems,
	}
	for _, o := range ev.Obstacles {
		od := obstacleData{
			Kind:    o.Kind.String(),
			Rect:    rectData{X: o.Rect.X, Y: o.Rect.Y, W: o.Rect.W, H: o.Rect.H},
			Visible: o.Kind != engine.KindBlinking || o.Visible,
		}
		if o.Kind == engine.KindGate {
			od.GapX = o.GapX
			od.GapWidth = o.GapWidth
		}
		f.Obstacles = append(f.Obstacles, od)
	}
	for _, c := range ev.Collectibles {
		if c.Collected {
			continue
		}
		f.Collectibles = append(f.Collectibles, collectibleData{
			X: c.Pos.X, Y: c.Pos.Y, Radius: c.Radius, Target: c.Target, Health: c.Health,
		})
	}
	return f
}
