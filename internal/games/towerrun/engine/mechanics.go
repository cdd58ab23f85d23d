package engine

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/towerrun/internal/core"
)

// Content generation constants
const (
	roamSpeed        = 100.0 // px/s velocity spread of roaming bars
	roamMinSize      = 20.0
	roamSizeSpread   = 30.0
	spawnBottomBand  = 200.0 // obstacles spawn above this band
	itemBottomBand   = 250.0
	itemTopMargin    = 50.0
	collectRadius    = 12.0
	collectExtra     = 5
	targetRadius     = 20.0
	targetExtra      = 3
	maxGates         = 4
	gateHeight       = 60.0
	gateFrequency    = 0.002 // radians per ms at speed 1.0
	platformMinWidth = 100.0
	platformSpread   = 100.0
	platformHeight   = 20.0
	platformSpeed    = 80.0
	gridRows         = 4
	gridCols         = 5
	tileGap          = 20.0
	tileHeight       = 30.0
	tileTop          = 100.0
	tileKeepChance   = 0.3 // a cell keeps its tile when rng > this
	blinkRate        = 0.001
)

// FloorMechanic generates the content of a floor for one mechanic.
type FloorMechanic interface {
	Generate(d DifficultyParams, arena Arena, rng *rand.Rand) FloorContent
}

// MechanicFunc adapts a function to FloorMechanic.
type MechanicFunc func(d DifficultyParams, arena Arena, rng *rand.Rand) FloorContent

// Generate calls f.
func (f MechanicFunc) Generate(d DifficultyParams, arena Arena, rng *rand.Rand) FloorContent {
	return f(d, arena, rng)
}

var mechanics = map[Mechanic]FloorMechanic{
	MechanicDodge:    MechanicFunc(generateDodge),
	MechanicTiming:   MechanicFunc(generateTiming),
	MechanicCollect:  MechanicFunc(generateCollect),
	MechanicControl:  MechanicFunc(generateControl),
	MechanicDestroy:  MechanicFunc(generateDestroy),
	MechanicPlatform: MechanicFunc(generatePlatform),
}

// MechanicFor returns the generator of m. Unknown mechanics fall back to
// dodge.
func MechanicFor(m Mechanic) FloorMechanic {
	if fm, ok := mechanics[m]; ok {
		return fm
	}
	return mechanics[MechanicDodge]
}

// GenerateFloorContent spawns the obstacles and collectibles of a floor.
func GenerateFloorContent(opt FloorOption, arena Arena, rng *rand.Rand) FloorContent {
	return MechanicFor(opt.Template.Mechanic).Generate(opt.Difficulty, arena, rng)
}

func generateDodge(d DifficultyParams, arena Arena, rng *rand.Rand) FloorContent {
	return FloorContent{Obstacles: roamingBars(d.ObstacleCount, d.Speed, arena, rng)}
}

// roamingBars spawns vertical or horizontal bars with random drift.
func roamingBars(n int, speed float64, arena Arena, rng *rand.Rand) []Obstacle {
	obs := make([]Obstacle, 0, n)
	for i := 0; i < n; i++ {
		vertical := rng.Float64() > 0.5
		size := rng.Float64()*roamSizeSpread + roamMinSize

		w, h := arena.Width*0.3, size
		if vertical {
			w, h = size, arena.Height*0.2
		}
		x := rng.Float64() * (arena.Width - size)
		y := rng.Float64() * (arena.Height - spawnBottomBand)

		obs = append(obs, Obstacle{
			Kind: KindMoving,
			Rect: core.NewRect(
				core.ClampF(x, 0, arena.Width-w),
				core.ClampF(y, 0, arena.Height-arena.FloorMargin-h),
				w, h,
			),
			Vel: core.Vec{
				X: (rng.Float64() - 0.5) * roamSpeed * speed,
				Y: (rng.Float64() - 0.5) * roamSpeed * speed,
			},
		})
	}
	return obs
}

func generateTiming(d DifficultyParams, arena Arena, rng *rand.Rand) FloorContent {
	count := core.Min(maxGates, d.ObstacleCount/2)
	spacing := (arena.Height - spawnBottomBand) / float64(count+1)
	gap := math.Min(d.SafeZone, arena.Width)

	obs := make([]Obstacle, 0, count)
	for i := 0; i < count; i++ {
		obs = append(obs, Obstacle{
			Kind:      KindGate,
			Rect:      core.NewRect(0, spacing*float64(i+1), arena.Width, gateHeight),
			GapX:      rng.Float64() * (arena.Width - gap),
			GapWidth:  gap,
			Phase:     rng.Float64() * 2 * math.Pi,
			Frequency: gateFrequency * d.Speed,
		})
	}
	return FloorContent{Obstacles: obs}
}

func generateCollect(d DifficultyParams, arena Arena, rng *rand.Rand) FloorContent {
	content := FloorContent{Obstacles: roamingBars(d.ObstacleCount/2, d.Speed, arena, rng)}

	n := d.ObstacleCount + collectExtra
	content.Collectibles = make([]Collectible, 0, n)
	for i := 0; i < n; i++ {
		content.Collectibles = append(content.Collectibles, Collectible{
			Pos: core.Vec{
				X: rng.Float64()*(arena.Width-30) + 15,
				Y: rng.Float64()*(arena.Height-itemBottomBand) + itemTopMargin,
			},
			Radius: collectRadius,
		})
	}
	return content
}

func generateControl(d DifficultyParams, arena Arena, rng *rand.Rand) FloorContent {
	obs := make([]Obstacle, 0, d.ObstacleCount)
	for i := 0; i < d.ObstacleCount; i++ {
		w := platformMinWidth + rng.Float64()*platformSpread
		x := rng.Float64() * (arena.Width - platformMinWidth)
		obs = append(obs, Obstacle{
			Kind: KindPlatform,
			Rect: core.NewRect(
				core.ClampF(x, 0, arena.Width-w),
				rng.Float64()*(arena.Height-spawnBottomBand),
				w, platformHeight,
			),
			Vel: core.Vec{X: (rng.Float64() - 0.5) * platformSpeed * d.Speed},
		})
	}
	return FloorContent{Obstacles: obs}
}

func generateDestroy(d DifficultyParams, arena Arena, rng *rand.Rand) FloorContent {
	n := d.ObstacleCount + targetExtra
	cols := make([]Collectible, 0, n)
	for i := 0; i < n; i++ {
		cols = append(cols, Collectible{
			Pos: core.Vec{
				X: rng.Float64()*(arena.Width-50) + 25,
				Y: rng.Float64()*(arena.Height-itemBottomBand) + itemTopMargin,
			},
			Radius: targetRadius,
			Health: 1,
			Target: true,
		})
	}
	return FloorContent{Collectibles: cols}
}

func generatePlatform(d DifficultyParams, arena Arena, rng *rand.Rand) FloorContent {
	tileW := arena.Width/gridCols - tileGap
	rowSpacing := (arena.Height - spawnBottomBand) / gridRows

	var obs []Obstacle
	for row := 0; row < gridRows; row++ {
		for col := 0; col < gridCols; col++ {
			if rng.Float64() <= tileKeepChance {
				continue
			}
			obs = append(obs, Obstacle{
				Kind: KindBlinking,
				Rect: core.NewRect(
					float64(col)*(tileW+tileGap)+tileGap/2,
					float64(row)*rowSpacing+tileTop,
					tileW, tileHeight,
				),
				Phase:     rng.Float64() * 2 * math.Pi,
				Frequency: blinkRate * d.Speed,
				Visible:   true,
			})
		}
	}
	return FloorContent{Obstacles: obs}
}
