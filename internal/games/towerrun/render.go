package towerrun

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/towerrun/internal/core"
	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

// Timer thresholds in seconds for the HUD colours.
const (
	timerWarning  = 10
	timerCritical = 5
)

// Render draws the current screen into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() < 20 || dst.Height() < 10 {
		dst.DrawText(0, 0, "Terminal too small", core.ColorRed)
		return
	}

	switch g.session.State() {
	case engine.StateMenu:
		g.renderMenu(dst)
	case engine.StateChoosing:
		g.renderTowerMap(dst)
	case engine.StateCountdown:
		g.renderCountdown(dst)
	case engine.StatePlaying:
		g.renderFloor(dst)
	case engine.StatePaused:
		g.renderFloor(dst)
		g.renderPause(dst)
	case engine.StateResult:
		g.renderResult(dst)
	case engine.StateSummary:
		g.renderSummary(dst)
	case engine.StateGameOver:
		g.renderGameOver(dst)
	}
}

var titleArt = []string{
	"╔╦╗╔═╗╦ ╦╔═╗╦═╗  ╦═╗╦ ╦╔╗╔",
	" ║ ║ ║║║║║╣ ╠╦╝  ╠╦╝║ ║║║║",
	" ╩ ╚═╝╚╩╝╚═╝╩╚═  ╩╚═╚═╝╝╚╝",
}

func (g *Game) renderMenu(dst *core.Screen) {
	switch g.page {
	case PageHowTo:
		g.renderHowTo(dst)
		return
	case PageSettings:
		g.renderSettings(dst)
		return
	}

	y := 2
	for _, line := range titleArt {
		dst.DrawTextCentered(y, line, core.ColorCyan)
		y++
	}
	dst.DrawTextCentered(y+1, "AstroTech Tower · climb 8 tiers, pick your risk", core.ColorGray)

	best := g.session.Progress().BestScore()
	if best > 0 {
		dst.DrawTextCentered(y+3, fmt.Sprintf("Best score: %d", best), core.ColorYellow)
	}
	if fastest := g.session.Progress().FastestTime(); fastest > 0 {
		dst.DrawTextCentered(y+4, "Fastest clear: "+engine.FormatDuration(fastest), core.ColorYellow)
	}

	y += 6
	for i, item := range mainItems {
		label := "  " + item + "  "
		c := core.ColorWhite
		if i == g.cursor {
			label = "▶ " + item + " ◀"
			c = core.ColorBrightGreen
		}
		dst.DrawTextCentered(y+i, label, c)
	}
	footer := "↑/↓ move · enter select · q quit"
	if g.MenuHint != "" {
		footer += " · " + g.MenuHint
	}
	drawFooter(dst, footer)
}

var howToLines = []string{
	"Climb the tower one tier at a time.",
	"",
	"Each tier offers three floors. Press 1, 2 or 3 to pick one.",
	"Riskier floors are harder but multiply the points you earn.",
	"",
	"Move with WASD or the arrow keys.",
	"Survive until the timer runs out. On Data Stream floors",
	"collect every item, on Shield Matrix floors break every target.",
	"",
	"Clear a floor without damage or collect everything for bonuses.",
	"Fail a floor and the run is over.",
}

func (g *Game) renderHowTo(dst *core.Screen) {
	dst.DrawTextCentered(1, "HOW TO PLAY", core.ColorCyan)
	for i, line := range howToLines {
		dst.DrawTextCentered(3+i, line, core.ColorWhite)
	}

	// Floor catalog in two columns.
	y := 4 + len(howToLines)
	tpls := engine.Templates()
	rows := (len(tpls) + 1) / 2
	if y+rows < dst.Height()-1 {
		dst.DrawTextCentered(y, "FLOORS", core.ColorCyan)
		left := core.Max(0, dst.Width()/2-24)
		for i, t := range tpls {
			x := left + (i/rows)*26
			dst.DrawText(x, y+1+i%rows, clip(t.Icon+" "+t.Name, 24), core.ColorWhite)
		}
	}
	drawFooter(dst, "enter/b back")
}

func (g *Game) renderSettings(dst *core.Screen) {
	dst.DrawTextCentered(1, "SETTINGS", core.ColorCyan)
	s := g.session.Settings()
	rows := []string{
		"Reduce motion  " + checkbox(s.ReduceMotion),
		"Sound          " + checkbox(s.Sound),
		"Show FPS       " + checkbox(s.ShowFPS),
		"Clear all data",
		"Back",
	}
	for i, row := range rows {
		c := core.ColorWhite
		prefix := "  "
		if i == g.cursor {
			c = core.ColorBrightGreen
			prefix = "▶ "
		}
		if i == settingClearData && i != g.cursor {
			c = core.ColorRed
		}
		dst.DrawText(dst.Width()/2-12, 4+i*2, prefix+row, c)
	}
	if g.cleared {
		dst.DrawTextCentered(4+settingCount*2+1, "All data cleared", core.ColorYellow)
	}
	drawFooter(dst, "↑/↓ move · enter toggle · b back")
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// renderTowerMap draws the tier rows top tier first, one card per option.
func (g *Game) renderTowerMap(dst *core.Screen) {
	m := g.view.TowerMap
	header := fmt.Sprintf("TOWER  Tier %d  Score %d  x%.1f", m.CurrentTier, m.Score, m.Multiplier)
	dst.DrawText(1, 0, header, core.ColorBrightWhite)
	if m.BestScore > 0 {
		best := fmt.Sprintf("Best %d", m.BestScore)
		dst.DrawText(dst.Width()-core.TextWidth(best)-1, 0, best, core.ColorYellow)
	}

	rowH := 2
	avail := dst.Height() - 3
	if len(m.Rows)*rowH > avail {
		rowH = 1
	}
	cardW := (dst.Width() - 6) / 3

	for i, row := range m.Rows {
		y := 2 + i*rowH
		if y >= dst.Height()-1 {
			break
		}
		labelColor := core.ColorGray
		switch row.Status {
		case engine.TierActive:
			labelColor = core.ColorBrightWhite
		case engine.TierCompleted:
			labelColor = core.ColorGreen
		}
		dst.DrawText(0, y, fmt.Sprintf("T%d", row.Tier), labelColor)

		if row.Status == engine.TierLocked && len(row.Options) == 0 {
			dst.DrawText(5, y, strings.Repeat("·", dst.Width()-6), core.ColorDim)
			continue
		}
		for j, opt := range row.Options {
			x := 4 + j*(cardW+1)
			drawCard(dst, x, y, cardW, rowH, j, opt, row)
		}
	}
	drawFooter(dst, "1/2/3 choose floor · b menu · q quit")
}

func drawCard(dst *core.Screen, x, y, w, h, idx int, opt engine.FloorOption, row engine.TierRow) {
	c := core.ColorGray
	marker := " "
	switch row.Status {
	case engine.TierActive:
		c = core.ColorWhite
		marker = fmt.Sprintf("%d", idx+1)
	case engine.TierCompleted:
		c = core.ColorDim
		if idx == row.Selected {
			c = core.ColorGreen
			marker = "✓"
		}
	}

	title := fmt.Sprintf("%s %s %s", marker, opt.Template.Icon, opt.Template.Name)
	dst.DrawText(x, y, clip(title, w), c)

	risk := fmt.Sprintf("  %s x%.1f", opt.Risk.Label, opt.Risk.Multiplier)
	rc := riskColor(opt.Risk.Level)
	if row.Status != engine.TierActive {
		rc = c
	}
	if h > 1 {
		dst.DrawText(x, y+1, clip(risk, w), rc)
	} else {
		tw := core.TextWidth(title)
		if tw+core.TextWidth(risk) <= w {
			dst.DrawText(x+tw, y, risk, rc)
		}
	}
}

func riskColor(r engine.Risk) core.Color {
	switch r {
	case engine.RiskModerate:
		return core.ColorModerate
	case engine.RiskDangerous:
		return core.ColorDangerous
	default:
		return core.ColorSafe
	}
}

// clip shortens text to at most w cells.
func clip(text string, w int) string {
	if core.TextWidth(text) <= w {
		return text
	}
	var b strings.Builder
	used := 0
	for _, r := range text {
		rw := core.TextWidth(string(r))
		if used+rw > w {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return b.String()
}

func (g *Game) renderCountdown(dst *core.Screen) {
	cd := g.view.Countdown
	area := arenaArea(dst)
	dst.DrawBox(boxAround(area), core.ColorGray)

	g.renderHUD(dst)
	mid := area.Y + area.H/2
	dst.DrawTextCentered(mid-3, cd.Floor.Icon+" "+cd.Floor.Name, core.ColorBrightWhite)
	dst.DrawTextCentered(mid-2, cd.Floor.Description, core.ColorGray)
	dst.DrawTextCentered(mid-1, fmt.Sprintf("%s risk · x%.1f", cd.Risk.Label, cd.Risk.Multiplier), riskColor(cd.Risk.Level))

	label := fmt.Sprintf("%d", cd.Remaining)
	if cd.Remaining <= 0 {
		label = "GO!"
	}
	dst.DrawTextCentered(mid+1, label, core.ColorYellow)
}

func (g *Game) renderHUD(dst *core.Screen) {
	h := g.view.HUD
	x := 1
	put := func(text string, c core.Color) {
		dst.DrawText(x, 0, text, c)
		x += core.TextWidth(text) + 2
	}
	put(fmt.Sprintf("T%d", h.Tier), core.ColorBrightWhite)
	put(h.Floor, core.ColorCyan)
	put(fmt.Sprintf("Score %d", h.Score), core.ColorWhite)
	put(fmt.Sprintf("⏱ %.1f", h.TimeRemaining), timerColor(h.TimeRemaining))
	if h.ShowFPS {
		fps := fmt.Sprintf("%d fps", h.FPS)
		dst.DrawText(dst.Width()-core.TextWidth(fps)-1, 0, fps, core.ColorGray)
	}
}

func timerColor(remaining float64) core.Color {
	switch {
	case remaining <= timerCritical:
		return core.ColorBrightRed
	case remaining <= timerWarning:
		return core.ColorYellow
	default:
		return core.ColorWhite
	}
}

// arenaArea is the inside of the arena box.
func arenaArea(dst *core.Screen) core.Area {
	return core.Area{X: 1, Y: 2, W: dst.Width() - 2, H: dst.Height() - 4}
}

func boxAround(a core.Area) core.Area {
	return core.Area{X: a.X - 1, Y: a.Y - 1, W: a.W + 2, H: a.H + 2}
}

// projector maps arena coordinates onto screen cells.
type projector struct {
	area   core.Area
	sx, sy float64
}

func newProjector(area core.Area, arena engine.Arena) projector {
	p := projector{area: area, sx: 1, sy: 1}
	if arena.Width > 0 {
		p.sx = float64(area.W) / arena.Width
	}
	if arena.Height > 0 {
		p.sy = float64(area.H) / arena.Height
	}
	return p
}

func (p projector) point(v core.Vec) (int, int) {
	x := p.area.X + int(v.X*p.sx)
	y := p.area.Y + int(v.Y*p.sy)
	return core.Clamp(x, p.area.X, p.area.Right()-1), core.Clamp(y, p.area.Y, p.area.Bottom()-1)
}

// rect returns the cells covered by r, at least one cell in each direction.
func (p projector) rect(r core.Rect) core.Area {
	x0 := int(math.Floor(r.X * p.sx))
	y0 := int(math.Floor(r.Y * p.sy))
	x1 := int(math.Ceil(r.Right() * p.sx))
	y1 := int(math.Ceil(r.Bottom() * p.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	a := core.Area{X: p.area.X + x0, Y: p.area.Y + y0, W: x1 - x0, H: y1 - y0}
	return intersect(a, p.area)
}

func intersect(a, b core.Area) core.Area {
	x0 := core.Max(a.X, b.X)
	y0 := core.Max(a.Y, b.Y)
	x1 := core.Min(a.Right(), b.Right())
	y1 := core.Min(a.Bottom(), b.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return core.Area{}
	}
	return core.Area{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (g *Game) renderFloor(dst *core.Screen) {
	area := arenaArea(dst)
	border := core.ColorGray
	f := g.view.Frame
	if g.view.Flashing() && !f.ReduceMotion {
		border = core.ColorRed
	}
	dst.DrawBox(boxAround(area), border)
	g.renderHUD(dst)
	if !g.view.HasFrame() {
		return
	}

	p := newProjector(area, f.Arena)
	drawGrid(dst, area)

	floorY := area.Y + int((f.Arena.Height-f.Arena.FloorMargin)*p.sy)
	if floorY > area.Y && floorY < area.Bottom() {
		dst.DrawHLine(area.X, floorY, area.W, '┄', core.ColorGrid)
	}

	for _, o := range f.Obstacles {
		drawObstacle(dst, p, o, f.Arena)
	}
	for _, c := range f.Collectibles {
		if c.Collected {
			continue
		}
		x, y := p.point(c.Pos)
		if c.Target {
			dst.SetColor(x, y, '◎', core.ColorTarget)
		} else {
			dst.SetColor(x, y, '◆', core.ColorCollectible)
		}
	}

	pc := core.ColorPlayer
	if g.view.Flashing() {
		pc = core.ColorBrightWhite
	}
	dst.FillArea(p.rect(f.Player), '█', pc)

	status := fmt.Sprintf("damage %d", f.DamageTaken)
	if f.TotalItems > 0 {
		status = fmt.Sprintf("items %d/%d · %s", f.ItemsCollected, f.TotalItems, status)
	}
	drawFooter(dst, status+" · p pause · q quit")
}

func drawGrid(dst *core.Screen, area core.Area) {
	for y := area.Y + 1; y < area.Bottom(); y += 4 {
		for x := area.X + 2; x < area.Right(); x += 8 {
			dst.SetColor(x, y, '·', core.ColorGrid)
		}
	}
}

func drawObstacle(dst *core.Screen, p projector, o engine.Obstacle, arena engine.Arena) {
	switch o.Kind {
	case engine.KindMoving:
		dst.FillArea(p.rect(o.Rect), '█', core.ColorHazard)
	case engine.KindGate:
		left, right := o.Segments(arena.Width)
		if left.W > 0 {
			dst.FillArea(p.rect(left), '▓', core.ColorGate)
		}
		if right.W > 0 {
			dst.FillArea(p.rect(right), '▓', core.ColorGate)
		}
	case engine.KindPlatform:
		dst.FillArea(p.rect(o.Rect), '▒', core.ColorPlatform)
	case engine.KindBlinking:
		if o.Visible {
			dst.FillArea(p.rect(o.Rect), '▒', core.ColorTile)
		} else {
			dst.FillArea(p.rect(o.Rect), '░', core.ColorDim)
		}
	}
}

func (g *Game) renderPause(dst *core.Screen) {
	w, h := 36, 13
	box := core.Area{X: (dst.Width() - w) / 2, Y: (dst.Height() - h) / 2, W: w, H: h}
	dst.FillArea(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+2, "PAUSED", core.ColorYellow)
	dst.DrawTextCentered(box.Y+4, "p/enter resume", core.ColorWhite)
	dst.DrawTextCentered(box.Y+5, "r restart run ", core.ColorWhite)
	dst.DrawTextCentered(box.Y+6, "b quit to menu", core.ColorWhite)

	s := g.session.Settings()
	x := box.X + 7
	dst.DrawText(x, box.Y+8, "1 reduce motion "+checkbox(s.ReduceMotion), core.ColorGray)
	dst.DrawText(x, box.Y+9, "2 sound         "+checkbox(s.Sound), core.ColorGray)
	dst.DrawText(x, box.Y+10, "3 show fps      "+checkbox(s.ShowFPS), core.ColorGray)
}

func (g *Game) renderResult(dst *core.Screen) {
	r := g.view.Result
	y := 2
	if r.Report.Success {
		dst.DrawTextCentered(y, "✓ FLOOR CLEARED", core.ColorBrightGreen)
	} else {
		dst.DrawTextCentered(y, "✗ FLOOR FAILED", core.ColorBrightRed)
	}
	dst.DrawTextCentered(y+1, fmt.Sprintf("Tier %d · %s %s", r.Tier, r.Floor.Icon, r.Floor.Name), core.ColorGray)

	lines := []struct {
		label string
		value string
	}{
		{"Base", fmt.Sprintf("%d", r.Score.Base)},
		{"Time bonus", fmt.Sprintf("%d", r.Score.TimeBonus)},
		{"Performance", fmt.Sprintf("%d", r.Score.Performance)},
		{"Multiplier", fmt.Sprintf("x%.1f", r.Score.Multiplier)},
		{"Floor total", fmt.Sprintf("%d", r.Score.Total)},
	}
	x := dst.Width()/2 - 12
	for i, l := range lines {
		c := core.ColorWhite
		if i == len(lines)-1 {
			c = core.ColorBrightWhite
		}
		dst.DrawText(x, y+3+i, fmt.Sprintf("%-14s%10s", l.label, l.value), c)
	}

	y += 3 + len(lines) + 1
	if len(r.Score.Rewards) > 0 && r.Report.Success {
		badges := make([]string, len(r.Score.Rewards))
		for i, b := range r.Score.Rewards {
			badges[i] = "★ " + b
		}
		dst.DrawTextCentered(y, strings.Join(badges, "   "), core.ColorYellow)
		y++
	}
	dst.DrawTextCentered(y+1, fmt.Sprintf("Run score: %d", r.RunScore), core.ColorBrightWhite)

	next := "enter: see results"
	if r.Report.Success && r.NextTier > r.Tier {
		next = fmt.Sprintf("enter: continue to tier %d", r.NextTier)
	}
	drawFooter(dst, next)
}

func (g *Game) renderSummary(dst *core.Screen) {
	s := g.view.Summary
	dst.DrawTextCentered(2, "★ TOWER CONQUERED ★", core.ColorBrightGreen)
	rows := []string{
		fmt.Sprintf("Score              %6d", s.Score),
		fmt.Sprintf("Floors cleared     %6d", s.FloorsCleared),
		fmt.Sprintf("Total time         %6s", s.TotalTime),
		fmt.Sprintf("Highest multiplier %5.1fx", s.HighestMultiplier),
	}
	for i, row := range rows {
		dst.DrawTextCentered(5+i, row, core.ColorWhite)
	}
	y := 5 + len(rows) + 1
	if s.IsNewBest {
		dst.DrawTextCentered(y, "New best score!", core.ColorYellow)
		y++
	}
	if s.IsFastest {
		dst.DrawTextCentered(y, "Fastest clear!", core.ColorYellow)
	}
	drawFooter(dst, "enter new run · r restart · b menu")
}

func (g *Game) renderGameOver(dst *core.Screen) {
	s := g.view.GameOver
	dst.DrawTextCentered(2, "RUN ENDED", core.ColorBrightRed)
	rows := []string{
		fmt.Sprintf("Score          %6d", s.Score),
		fmt.Sprintf("Reached tier   %6d", s.Tier),
		fmt.Sprintf("Floors cleared %6d", s.FloorsCleared),
	}
	for i, row := range rows {
		dst.DrawTextCentered(5+i, row, core.ColorWhite)
	}
	if s.IsNewBest {
		dst.DrawTextCentered(5+len(rows)+1, "New best score!", core.ColorYellow)
	}
	drawFooter(dst, "enter try again · b menu")
}

func drawFooter(dst *core.Screen, text string) {
	dst.DrawTextCentered(dst.Height()-1, text, core.ColorDim)
}
